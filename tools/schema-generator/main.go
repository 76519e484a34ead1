// Command schema-generator writes the JSON schema of the ctnotes config file.
package main

import (
	"os"
	"path/filepath"

	"github.com/grovetools/ctnotes/config"
	"github.com/grovetools/ctnotes/logging"
)

func main() {
	logger := logging.NewLogger("schema-generator")

	data, err := config.GenerateSchema()
	if err != nil {
		logger.WithError(err).Fatal("Error generating schema")
	}

	outputDir := "schema/definitions"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		logger.WithError(err).Fatal("Error creating schema directory")
	}

	outputPath := filepath.Join(outputDir, "ctnotes.schema.json")
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		logger.WithError(err).Fatal("Error writing schema file")
	}
	logger.WithField("path", outputPath).Info("Generated config schema")
}
