package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Zachkp/ventures/internal/catalog"
	"github.com/Zachkp/ventures/internal/config"
	"github.com/Zachkp/ventures/internal/portfolio"
	"github.com/Zachkp/ventures/internal/store"
	"github.com/Zachkp/ventures/internal/tui"
)

var (
	flagSearch     string
	flagCategories []string
	flagStages     []string
	flagSort       string
	flagJSON       bool

	flagLimit     int
	flagOlderThan string
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"})
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"})
	starStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Filter and sort the venture catalog",
	Long: `List ventures through the same pipeline the site uses.

--category and --stage may be repeated; ventures must match one of the
selected categories and one of the selected stages.`,
	Example: `  ventures list --category saas --sort newest
  ventures list --search nano --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		q, err := portfolio.NewQuery(flagSearch, flagCategories, flagStages, flagSort)
		if err != nil {
			return err
		}
		view := portfolio.Apply(c, q)
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		renderVentureList(cmd.OutOrStdout(), view)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return tui.Run(c)
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show stored contact messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		db, err := store.Open(cfg.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		msgs, err := db.ListMessages(cmd.Context(), flagLimit)
		if err != nil {
			return fmt.Errorf("listing messages: %w", err)
		}
		renderMessages(cmd.OutOrStdout(), msgs)
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old contact messages",
	Long: `Delete stored contact messages older than the retention period.

Uses the retention value from config (default: 365d) unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		retention := cfg.RetentionDuration()
		if flagOlderThan != "" {
			d, err := parseRetention(flagOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		db, err := store.Open(cfg.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		deleted, err := db.Prune(cmd.Context(), time.Now().Add(-retention))
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		out := cmd.OutOrStdout()
		if deleted == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
		} else {
			fmt.Fprintf(out, "Pruned %d message(s) older than %s.\n", deleted, formatDays(retention))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ventures %s (commit: %s)\n", version, commit)
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "text to match in name, tagline or description")
	listCmd.Flags().StringSliceVarP(&flagCategories, "category", "c", nil, "category key (repeatable)")
	listCmd.Flags().StringSliceVar(&flagStages, "stage", nil, "stage key (repeatable)")
	listCmd.Flags().StringVar(&flagSort, "sort", string(portfolio.DefaultSort), "featured, newest, stage or category")
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")

	messagesCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "number of messages to show")
	pruneCmd.Flags().StringVar(&flagOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

func loadCatalog() (*portfolio.Catalog, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderVentureList(w io.Writer, v portfolio.View) {
	if v.Empty() {
		fmt.Fprintln(w, dimStyle.Render("No ventures found matching your criteria"))
	}
	for _, x := range v.Ventures {
		name := nameStyle.Render(x.Name)
		if x.Featured {
			name += " " + starStyle.Render("*")
		}
		fmt.Fprintln(w, name)
		fmt.Fprintf(w, "  %s %s\n", metaStyle.Render(x.Category.Label()),
			dimStyle.Render("· "+x.Stage.Label()+" · "+x.Founded))
		if x.Tagline != "" {
			fmt.Fprintf(w, "  %s\n", x.Tagline)
		}
	}
	fmt.Fprintf(w, "\nShowing %d of %d ventures\n", v.FilteredCount, v.TotalCount)
}

func renderMessages(w io.Writer, msgs []store.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}
	for _, m := range msgs {
		status := dimStyle.Render("stored")
		if m.SentAt != nil {
			status = metaStyle.Render("sent")
		}
		fmt.Fprintf(w, "%s  %s <%s>  %s\n",
			dimStyle.Render(m.CreatedAt.Local().Format("2006-01-02 15:04")),
			nameStyle.Render(m.Name), m.Email, status)
		for _, line := range strings.Split(m.Body, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func parseRetention(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

func formatDays(d time.Duration) string {
	if days := int(d.Hours() / 24); days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
