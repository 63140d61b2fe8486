package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/analysis"
	"github.com/spigell/skillgap/internal/document"
	"github.com/spigell/skillgap/internal/utils"
)

const defaultPreviewLength = 300

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract text, contacts, sections and skills from a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		doc, err := document.Read(args[0])
		if err != nil {
			logger.Fatal("reading document", zap.String("path", args[0]), zap.Error(err))
		}

		profile := analysis.New(config.extractor(), config.scoringOptions(), logger).Profile(doc)

		if output, _ := cmd.Flags().GetString("output"); output == outputJSON {
			if err := writeJSON(os.Stdout, profile); err != nil {
				logger.Fatal("writing profile", zap.Error(err))
			}
			return
		}

		preview, _ := cmd.Flags().GetInt("preview")
		if preview <= 0 {
			preview = defaultPreviewLength
		}

		if err := profile.WriteText(os.Stdout, preview); err != nil {
			logger.Fatal("writing profile", zap.Error(err))
		}
		fmt.Printf("\nText:\n  %s\n", utils.Preview(doc.Text, preview))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Int("preview", defaultPreviewLength, "number of characters to preview per section")
	parseCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}
