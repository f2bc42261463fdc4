package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/config"
	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/logger"
	"github.com/artem13815/resumecompare/pkg/nlp"
	"github.com/artem13815/resumecompare/pkg/resume/nlpparser"
	"github.com/artem13815/resumecompare/pkg/resume/regexparser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume_file]",
	Short: "Parse a resume with both parsers and print the results",
	Long: `Parse a PDF, DOCX or DOC resume with the regex and the NLP parser.

Without an argument resumectl looks for resume.pdf, resume.docx or resume.doc
and other resume files in the current directory, and asks which one to use
when there are several.`,
	Example: `  resumectl parse resume.pdf
  resumectl parse my_resume.docx --json
  resumectl parse /path/to/resume.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		choose := promptChoice
		if viper.GetBool("first") {
			choose = nil
		}
		return runParse(cmd.Context(), cmd.OutOrStdout(), args, choose)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolP("json", "j", false, "print the results as JSON")
	parseCmd.Flags().Bool("first", false, "do not ask, take the best discovered file")
	parseCmd.Flags().Duration("timeout", 30*time.Second, "parsing timeout")
	parseCmd.Flags().Int64("max-bytes", config.DefaultMaxUploadBytes, "largest file accepted")

	for _, name := range []string{"json", "first", "timeout", "max-bytes"} {
		_ = viper.BindPFlag(name, parseCmd.Flags().Lookup(name))
	}
}

func runParse(ctx context.Context, out io.Writer, args []string, choose chooser) error {
	log, err := logger.NewCLI(viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, err := resolveResume(args, wd, choose)
	if err != nil {
		return err
	}
	log.Debug("resume resolved", zap.String("path", path))

	skills, err := nlp.LoadSkillDB(viper.GetString("skills-file"))
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", app+"-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	svc := comparison.NewService(comparison.Config{
		UploadDir:    workDir,
		MaxBytes:     viper.GetInt64("max-bytes"),
		ParseTimeout: viper.GetDuration("timeout"),
	}, document.NewReader(), regexparser.New(), nlpparser.New(skills, log), comparison.WithLogger(log))

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}

	cmp, err := svc.Compare(ctx, comparison.Upload{
		Filename: filepath.Base(path),
		Size:     st.Size(),
		Body:     f,
	})
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cmp.Response)
	}
	return writeReport(out, cmp)
}
