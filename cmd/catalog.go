package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/color"
	"github.com/onair-cli/onair/constant"
	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/util"
	"github.com/onair-cli/onair/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogCmd groups the commands inspecting and creating the episode catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or create the episode catalog",
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	catalogListCmd.SetOut(os.Stdout)
}

var catalogListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List catalog episodes and their available languages",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		episodes := c.Episodes
		if len(args) == 1 {
			episodes = c.Find(args[0])
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(episodes))
			return
		}

		cmd.Println(style.Faint(fmt.Sprintf("%s in %s", util.Quantify(len(episodes), "episode", "episodes"), c.Path)))
		for _, e := range episodes {
			cmd.Printf("%s %s\n", style.Bold(e.Title), style.Fg(color.Yellow)(e.Slug))
			for _, l := range catalog.Languages {
				url := e.Audio.For(l.Tag)
				if url == "" {
					cmd.Printf("  %s %s\n", style.Fg(color.Red)(l.Tag), style.Faint("coming soon"))
					continue
				}
				cmd.Printf("  %s %s\n", style.Fg(color.Green)(l.Tag), url)
			}
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
	catalogSchemaCmd.SetOut(os.Stdout)
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the catalog file",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(catalog.Schema()))
	},
}

func init() {
	catalogCmd.AddCommand(catalogInitCmd)
	catalogInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing catalog")
}

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example catalog to the configured catalog path",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.Catalog()

		if catalog.Format(path) != "toml" {
			handleErr(fmt.Errorf("the template is toml, but %s is %s", path, catalog.Format(path)))
		}

		exists, err := filesystem.API().Exists(path)
		handleErr(err)

		if exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", path))
		}

		handleErr(filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm))
		handleErr(filesystem.API().WriteFile(path, []byte(constant.CatalogTemplate), os.ModePerm))

		fmt.Printf(
			"%s wrote catalog to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(path),
		)
	},
}
