// Command fhir-loader uploads FHIR resources to a FHIR server.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/fhir-loader/internal/adapters/driving/cli"
)

func main() {
	// A .env file in the working directory may supply FHIR_LOADER_* values.
	_ = godotenv.Load()

	os.Exit(cli.Execute())
}
