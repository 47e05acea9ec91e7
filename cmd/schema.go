package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aniko-app/aniko/config"
	"github.com/aniko-app/aniko/history"
	"github.com/aniko-app/aniko/progress"
	"github.com/aniko-app/aniko/source"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("detail", "d", false, "Generate the JSON Schema for anime detail objects")
	schemaCmd.Flags().BoolP("progress", "p", false, "Generate the JSON Schema for watch-progress objects")
	schemaCmd.Flags().BoolP("history", "H", false, "Generate the JSON Schema for watch-history objects")
	schemaCmd.Flags().BoolP("config", "c", false, "Generate the JSON Schema for configuration field objects")
	schemaCmd.MarkFlagsMutuallyExclusive("detail", "progress", "history", "config")

	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd generates JSON schemas for the structured outputs of other commands.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured command outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "anime", "episode", "item", "field", "userprogress", "animedetail":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("progress")):
			schema = reflector.Reflect([]progress.UserProgress{})
		case lo.Must(cmd.Flags().GetBool("history")):
			schema = reflector.Reflect([]history.Item{})
		case lo.Must(cmd.Flags().GetBool("config")):
			schema = reflector.Reflect([]config.Field{})
		default:
			schema = reflector.Reflect(&source.AnimeDetail{})
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
