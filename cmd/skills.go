package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/document"
)

var skillsCmd = &cobra.Command{
	Use:   "skills <file>",
	Short: "Print the known skills found in a document",
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

		found := config.extractor().Extract(doc.Text)
		logger.Info("skills extracted", zap.String("path", doc.Path), zap.Int("count", len(found)))

		if output, _ := cmd.Flags().GetString("output"); output == outputJSON {
			if err := writeJSON(os.Stdout, map[string]any{"skills": found, "count": len(found)}); err != nil {
				logger.Fatal("writing skills", zap.Error(err))
			}
			return
		}

		for _, skill := range found {
			fmt.Println(skill)
		}
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
