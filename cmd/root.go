package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/interview-coach/coach-pipeline/config"
)

var (
	cfgFile string
	logJSON bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "coach",
		Short:        "Score spoken interview answers against a rubric",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	root.AddCommand(newAnalyzeTextCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newQuestionsCmd())
	root.AddCommand(newReportCmd())
	return root
}

// setup loads the config and builds the root logger.
func setup() (*cfg.Root, *logrus.Logger, error) {
	conf, err := cfg.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
	if err != nil {
		log.Warnf("unknown log level %q, using info", conf.Pipeline.LogLvl)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return conf, log, nil
}
