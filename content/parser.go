package content

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// delimiter opens and closes the front matter block.
const delimiter = "---"

// reField matches a `key: value` front matter line. The key cannot contain a
// colon, so the value keeps any colons after the first one.
var reField = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)\s*:(?:\s+(.*))?$`)

var fieldsFormat = &frontmatter.Format{
	Start:     delimiter,
	End:       delimiter,
	Unmarshal: decodeFields,
}

// Parse splits raw into front matter and body. The returned record has no
// slug; the caller derives it from the file name. Required keys are not
// checked here, see Metadata.Validate.
func Parse(raw []byte) (Record, error) {
	fields := map[string]string{}
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fields, fieldsFormat)
	if err != nil {
		reason := "invalid front matter"
		if errors.Is(err, frontmatter.ErrNotFound) {
			reason = "missing front matter block delimited by " + delimiter
		}
		return Record{}, &MalformedContentError{Reason: reason, Err: err}
	}
	return Record{
		Metadata: fromFields(fields),
		Body:     strings.TrimSpace(string(body)),
	}, nil
}

// decodeFields is a frontmatter.UnmarshalFunc for the line based format.
// Lines that are not `key: value` are ignored.
func decodeFields(data []byte, v any) error {
	out, ok := v.(*map[string]string)
	if !ok {
		return errors.New("content: front matter target must be *map[string]string")
	}
	if *out == nil {
		*out = map[string]string{}
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		m := reField.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		(*out)[m[1]] = unquote(strings.TrimSpace(m[2]))
	}
	return nil
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
