// Package main provides the guide CLI: browse the vibes around Munkebjerg,
// bookmark places and change display settings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibe-guide/internal/catalog"
	"github.com/vibe-guide/internal/config"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/service"
	"github.com/vibe-guide/internal/types"
)

type appKey struct{}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

// newRootCmd builds the command tree. Every subcommand runs against an app
// opened in PersistentPreRunE. The returned closer flushes pending writes and
// releases storage; it is safe to call more than once and must run even when
// a command fails, since cobra skips post-run hooks on error.
func newRootCmd() (*cobra.Command, func() error) {
	var (
		jsonOut bool
		opened  *app
	)

	closeApp := func() error {
		if opened == nil {
			return nil
		}
		a := opened
		opened = nil
		return a.Close()
	}

	root := &cobra.Command{
		Use:           "guide",
		Short:         "Vibe guide for Munkebjerg",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := logging.InitGlobalLogger(
				logging.ParseLogLevel(cfg.Logging.Level),
				logging.ParseLogFormat(cfg.Logging.Format),
			)
			logger.SetOutput(cmd.ErrOrStderr())

			ctx := logging.WithLogger(cmd.Context(), logger)
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			opened = a
			cmd.SetContext(context.WithValue(ctx, appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
	}
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")

	out := func(cmd *cobra.Command) printer {
		return printer{w: cmd.OutOrStdout(), json: jsonOut}
	}

	root.AddCommand(
		newVibesCmd(out),
		newRecommendCmd(out),
		newMapCmd(out),
		newSaveCmd(out),
		newSavedCmd(out),
		newShareCmd(out),
		newSettingsCmd(out),
		newAboutCmd(out),
	)
	return root, closeApp
}

// run executes args and always releases the app
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, closeApp := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	return err
}

type printer struct {
	w    io.Writer
	json bool
}

func (p printer) emit(v interface{}, text func(w io.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func savedMark(saved bool) string {
	if saved {
		return "*"
	}
	return " "
}

func newVibesCmd(out func(*cobra.Command) printer) *cobra.Command {
	return &cobra.Command{
		Use:   "vibes",
		Short: "List vibe categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vibes := appFrom(cmd).recommendations.Vibes()
			return out(cmd).emit(vibes, func(w io.Writer) {
				for _, v := range vibes {
					fmt.Fprintf(w, "%s\t%s\t%d places\n", v.Key, v.Label, v.Count)
				}
			})
		},
	}
}

func newRecommendCmd(out func(*cobra.Command) printer) *cobra.Command {
	var vibe string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show recommended places",
		Long: `Show recommended places.

With categories on, the places of one vibe are listed (the first vibe unless
--vibe is given). With categories off, every place is listed, capped by the
show limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := appFrom(cmd).recommendations.Recommend(types.VibeKey(vibe))
			if err != nil {
				return err
			}
			return out(cmd).emit(recs, func(w io.Writer) {
				if recs.Vibe != nil {
					fmt.Fprintf(w, "%s\n", recs.Vibe.Label)
				} else {
					fmt.Fprintf(w, "All places (limit %s)\n", recs.ShowLimit)
				}
				for _, s := range recs.Spots {
					fmt.Fprintf(w, "%s %s\t%s\t%s\n", savedMark(s.Saved), s.ID, s.Title,
						catalog.FormatCoordinates(s.Lat, s.Lng))
				}
			})
		},
	}
	cmd.Flags().StringVar(&vibe, "vibe", "", "vibe key, e.g. party or relax")
	return cmd
}

func newMapCmd(out func(*cobra.Command) printer) *cobra.Command {
	var (
		focus    string
		cluster  []string
		platform string
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show map markers and the focused place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(platform)
			if err != nil {
				return err
			}
			view, err := appFrom(cmd).maps.View(service.MapRequest{
				FocusID:  focus,
				Cluster:  cluster,
				Platform: p,
			})
			if err != nil {
				return err
			}
			return out(cmd).emit(view, func(w io.Writer) {
				for _, m := range view.Markers {
					fmt.Fprintf(w, "%s %s\t%s\t%s\n", savedMark(m.Saved), m.ID, m.Title,
						catalog.FormatCoordinates(m.Lat, m.Lng))
				}
				if view.Focus != nil {
					fmt.Fprintf(w, "\nFocus: %s\n%s\nOpen in maps: %s\n",
						view.Focus.Title, view.Focus.Description, view.Focus.MapsURL)
				}
			})
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "ID of the place to focus")
	cmd.Flags().StringSliceVar(&cluster, "cluster", nil, "only show these place IDs")
	cmd.Flags().StringVar(&platform, "platform", string(types.PlatformIOS), "maps link flavour: ios or android")
	return cmd
}

func parsePlatform(s string) (types.Platform, error) {
	switch p := types.Platform(strings.ToLower(s)); p {
	case types.PlatformIOS, types.PlatformAndroid:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform %q, want ios or android", s)
	}
}

func newSaveCmd(out func(*cobra.Command) printer) *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Bookmark a place, or remove the bookmark if it is already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appFrom(cmd).savedList.Toggle(args[0])
			if err != nil {
				return err
			}
			return out(cmd).emit(res, func(w io.Writer) {
				if res.Saved {
					fmt.Fprintf(w, "Saved %s\n", res.Title)
				} else {
					fmt.Fprintf(w, "Removed %s\n", res.Title)
				}
			})
		},
	}
}

func newSavedCmd(out func(*cobra.Command) printer) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List bookmarked places, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := appFrom(cmd).savedList.List()
			return out(cmd).emit(entries, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintln(w, "No saved places yet")
					return
				}
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Title, catalog.FormatCoordinates(e.Lat, e.Lng))
				}
			})
		},
	}
}

func newShareCmd(out func(*cobra.Command) printer) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print the share message for a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := appFrom(cmd).maps.ShareLocation(args[0])
			if err != nil {
				return err
			}
			return out(cmd).emit(map[string]string{"message": text}, func(w io.Writer) {
				fmt.Fprint(w, text)
			})
		},
	}
}

func newSettingsCmd(out func(*cobra.Command) printer) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSettings(cmd, out(cmd))
		},
	}

	var categories, limit string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `  guide settings set --categories off --limit 5
  guide settings set --limit all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// both flags are checked before either is applied
			var (
				on    bool
				l     types.ShowLimit
				err   error
				flags = cmd.Flags()
			)
			if flags.Changed("categories") {
				if on, err = parseOnOff(categories); err != nil {
					return err
				}
			}
			if flags.Changed("limit") {
				if l, err = parseLimit(limit); err != nil {
					return err
				}
			}

			settings := appFrom(cmd).settings
			if flags.Changed("categories") {
				settings.SetCategoriesOn(on)
			}
			if flags.Changed("limit") {
				if err := settings.SetShowLimit(l); err != nil {
					return err
				}
			}
			return printSettings(cmd, out(cmd))
		},
	}
	set.Flags().StringVar(&categories, "categories", "on", "group recommendations by vibe: on or off")
	set.Flags().StringVar(&limit, "limit", types.ShowLimitAll, `places shown with categories off: "all" or a number`)

	settingsCmd.AddCommand(show, set)
	return settingsCmd
}

func printSettings(cmd *cobra.Command, p printer) error {
	s := appFrom(cmd).settings.Get()
	return p.emit(s, func(w io.Writer) {
		categories := "off"
		if s.CategoriesOn {
			categories = "on"
		}
		fmt.Fprintf(w, "categories\t%s\n", categories)
		fmt.Fprintf(w, "limit\t%s\n", s.ShowLimit)
	})
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

// parseLimit accepts "all" or a non-negative number
func parseLimit(s string) (types.ShowLimit, error) {
	l, err := types.ParseShowLimit(s)
	if err != nil {
		return types.ShowLimit{}, apperrors.NewValidationError("limit", err.Error())
	}
	return l, nil
}

func newAboutCmd(out func(*cobra.Command) printer) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "About Munkebjerg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return out(cmd).emit(map[string]string{"message": service.AboutText}, func(w io.Writer) {
				fmt.Fprintln(w, service.AboutText)
			})
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input (invalid value, unknown place) and 1 otherwise
func exitCode(err error) int {
	switch apperrors.Categorize(err).Category {
	case apperrors.CategoryValidation, apperrors.CategoryNotFound:
		return 2
	default:
		return 1
	}
}
