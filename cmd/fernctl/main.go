// fernctl runs the content pipeline offline: validate legacy exports, render
// documents, and rank buildings without a running service.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gobusters/ectologger"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/pkg/catalog"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/personalization"
	"github.com/Ramsey-B/fern/pkg/pipeline"
	"github.com/Ramsey-B/fern/pkg/scoring"
	"github.com/Ramsey-B/fern/pkg/template"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fernctl",
		Short:         "Offline tools for the Fern content pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newBuildCmd())
	return root
}

// quietLogger keeps pipeline logging out of command output.
func quietLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

// loadLegacy reads a JSON file holding either one legacy record or a list.
func loadLegacy(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []map[string]any
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one map[string]any
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("%s is neither a record nor a record list: %w", path, err)
	}
	return []map[string]any{one}, nil
}

func newPipeline(cmd *cobra.Command, cat *catalog.Catalog, store *template.Store) (*pipeline.Pipeline, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")

	table := &personalization.RuleTable{}
	if rulesPath != "" {
		loaded, err := personalization.LoadRules(rulesPath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	if store == nil {
		store = template.NewStore()
	}

	return pipeline.New(quietLogger(), personalization.NewSelector(table), store, cat, pipeline.Options{}), nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <legacy.json>",
		Short: "Migrate and validate legacy records, reporting rejections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legacy, err := loadLegacy(args[0])
			if err != nil {
				return err
			}

			p, err := newPipeline(cmd, catalog.New(), nil)
			if err != nil {
				return err
			}

			result := p.ProcessBatch(cmd.Context(), legacy, "fernctl")
			fmt.Fprintf(cmd.OutOrStdout(), "accepted: %d\nrejected: %d\n", result.Accepted, result.Rejected)
			for index, rejection := range result.Rejections {
				fmt.Fprintf(cmd.OutOrStdout(), "  record %d: %v\n", index, rejection.Reasons())
			}

			if result.Rejected > 0 {
				return fmt.Errorf("%d of %d records rejected", result.Rejected, len(legacy))
			}
			return nil
		},
	}

	cmd.Flags().String("rules", "", "path to a personalization rules YAML file")
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <legacy.json>",
		Short: "Render personalized documents for legacy records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateDir, _ := cmd.Flags().GetString("templates")
			templateID, _ := cmd.Flags().GetString("template")
			locationType, _ := cmd.Flags().GetString("location-type")
			audience, _ := cmd.Flags().GetString("audience")

			legacy, err := loadLegacy(args[0])
			if err != nil {
				return err
			}

			store, err := template.LoadStore(templateDir)
			if err != nil {
				return err
			}
			if store.Get(templateID) == nil {
				return fmt.Errorf("template %q not found in %s (have %v)", templateID, templateDir, store.IDs())
			}

			cat := catalog.New()
			p, err := newPipeline(cmd, cat, store)
			if err != nil {
				return err
			}

			result := p.ProcessBatch(cmd.Context(), legacy, "fernctl")
			if result.Rejected > 0 || result.Failed > 0 {
				return fmt.Errorf("%d records did not ingest cleanly", result.Rejected+result.Failed)
			}

			viewer := models.ViewerContext{
				LocationType: models.LocationType(locationType),
				Audience:     models.Audience(audience),
			}

			for _, record := range cat.List() {
				document, err := p.Render(cmd.Context(), record.ID(), templateID, viewer)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n%s\n", record.ID(), document)
			}
			return nil
		},
	}

	cmd.Flags().String("templates", "assets/templates", "template directory")
	cmd.Flags().String("template", "listing", "template ID to render")
	cmd.Flags().String("rules", "", "path to a personalization rules YAML file")
	cmd.Flags().String("location-type", "", "viewer location type")
	cmd.Flags().String("audience", "", "viewer audience")
	return cmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <legacy.json>",
		Short: "Render every record through every template and write ranking files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateDir, _ := cmd.Flags().GetString("templates")
			outDir, _ := cmd.Flags().GetString("out")
			locationType, _ := cmd.Flags().GetString("location-type")
			audience, _ := cmd.Flags().GetString("audience")

			legacy, err := loadLegacy(args[0])
			if err != nil {
				return err
			}

			store, err := template.LoadStore(templateDir)
			if err != nil {
				return err
			}
			if len(store.IDs()) == 0 {
				return fmt.Errorf("no templates found in %s", templateDir)
			}

			cat := catalog.New()
			p, err := newPipeline(cmd, cat, store)
			if err != nil {
				return err
			}

			result := p.ProcessBatch(cmd.Context(), legacy, "fernctl")
			if result.Rejected > 0 || result.Failed > 0 {
				for index, rejection := range result.Rejections {
					fmt.Fprintf(cmd.ErrOrStderr(), "record %d: %v\n", index, rejection.Reasons())
				}
				return fmt.Errorf("%d records did not ingest cleanly", result.Rejected+result.Failed)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			viewer := models.ViewerContext{
				LocationType: models.LocationType(locationType),
				Audience:     models.Audience(audience),
			}

			written := 0
			for _, record := range cat.List() {
				for _, templateID := range store.IDs() {
					document, err := p.Render(cmd.Context(), record.ID(), templateID, viewer)
					if err != nil {
						return err
					}
					name := fmt.Sprintf("%s.%s.md", record.ID(), templateID)
					if err := os.WriteFile(filepath.Join(outDir, name), []byte(document), 0o644); err != nil {
						return err
					}
					written++
				}
			}

			for _, priority := range models.Priorities {
				rankings, err := scoring.Compare(cat.List(), priority)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(rankings, "", "  ")
				if err != nil {
					return err
				}
				name := fmt.Sprintf("rankings-%s.json", priority)
				if err := os.WriteFile(filepath.Join(outDir, name), b, 0o644); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d documents and %d ranking files to %s\n", written, len(models.Priorities), outDir)
			return nil
		},
	}

	cmd.Flags().String("templates", "assets/templates", "template directory")
	cmd.Flags().String("rules", "", "path to a personalization rules YAML file")
	cmd.Flags().String("out", "dist", "output directory")
	cmd.Flags().String("location-type", "", "viewer location type")
	cmd.Flags().String("audience", "", "viewer audience")
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <legacy.json>",
		Short: "Rank legacy records by a score priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priorityFlag, _ := cmd.Flags().GetString("priority")
			priority := models.Priority(priorityFlag)
			if !models.IsValidPriority(priorityFlag) {
				return fmt.Errorf("unknown priority %q (valid: %v)", priorityFlag, models.Priorities)
			}

			legacy, err := loadLegacy(args[0])
			if err != nil {
				return err
			}

			cat := catalog.New()
			p, err := newPipeline(cmd, cat, nil)
			if err != nil {
				return err
			}

			result := p.ProcessBatch(cmd.Context(), legacy, "fernctl")
			if result.Accepted == 0 {
				return fmt.Errorf("no records ingested cleanly")
			}

			rankings, err := scoring.Compare(cat.List(), priority)
			if err != nil {
				return err
			}

			for i, ranking := range rankings {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-30s %.1f\n", i+1, ranking.ID, ranking.Score)
			}
			return nil
		},
	}

	cmd.Flags().String("priority", string(models.PriorityOverall), "score priority to rank by")
	cmd.Flags().String("rules", "", "path to a personalization rules YAML file")
	return cmd
}
