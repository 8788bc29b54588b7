package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	blog "github.com/jyodsh/jyothish-in"
)

// config mirrors the keys accepted in config.yaml and JYOTHISH_* variables.
type config struct {
	Name         string
	URL          string
	Description  string
	Author       string
	Addr         string
	ContentDir   string
	StaticDir    string
	OutputDir    string
	FeedLimit    int
	CacheTTL     time.Duration
	SkipInvalid  bool
	LogLevel     string
	OGBackground string
}

func (c config) site() blog.SiteConfig {
	return blog.SiteConfig{
		Name:         c.Name,
		URL:          c.URL,
		Description:  c.Description,
		Author:       c.Author,
		Addr:         c.Addr,
		ContentDir:   c.ContentDir,
		StaticDir:    c.StaticDir,
		SkipInvalid:  c.SkipInvalid,
		FeedLimit:    c.FeedLimit,
		CacheTTL:     c.CacheTTL,
		OGBackground: c.OGBackground,
		LogLevel:     c.LogLevel,
	}
}

type cli struct {
	cfgFile string
	cfg     config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "jyothish",
		Short:         "A personal blog built from markdown files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		c.newServeCmd(),
		c.newBuildCmd(),
		c.newPostCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "public")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("feedLimit", 20)
	v.SetDefault("cacheTTL", time.Minute)
	v.SetDefault("skipInvalid", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("ogBackground", "")

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("JYOTHISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Flags bound on the running command override file and environment.
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("addr", f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("out"); f != nil {
		if err := v.BindPFlag("outputDir", f); err != nil {
			return err
		}
	}

	if err := v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jyothish %s\n", version)
		},
	}
}
