package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mcoot/playerroster/internal/api/request"
	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/dependencies/clock"
	"github.com/mcoot/playerroster/internal/dependencies/random"
	"github.com/mcoot/playerroster/internal/seed"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player roster commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersAllCmd())
	cmd.AddCommand(newPlayersCountCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersCreateCmd())
	cmd.AddCommand(newPlayersUpdateCmd())
	cmd.AddCommand(newPlayersDeleteCmd())
	cmd.AddCommand(newPlayersSeedCmd())

	return cmd
}

// filterFlags binds every list filter to a flag named after its query parameter
func filterFlags(fs *pflag.FlagSet) {
	fs.String(request.ParamName, "", "Name contains (case-sensitive)")
	fs.String(request.ParamTitle, "", "Title contains (case-sensitive)")
	fs.String(request.ParamRace, "", "Race, e.g. HOBBIT")
	fs.String(request.ParamProfession, "", "Profession, e.g. WARRIOR")
	fs.String(request.ParamAfter, "", "Born on or after (YYYY-MM-DD, RFC 3339 or epoch ms)")
	fs.String(request.ParamBefore, "", "Born on or before (YYYY-MM-DD, RFC 3339 or epoch ms)")
	fs.Int(request.ParamMinExperience, 0, "Minimum experience")
	fs.Int(request.ParamMaxExperience, 0, "Maximum experience")
	fs.Int(request.ParamMinLevel, 0, "Minimum level")
	fs.Int(request.ParamMaxLevel, 0, "Maximum level")
	fs.Bool(request.ParamBanned, false, "Banned status")
	fs.String(request.ParamFilter, "", `AIP-160 filter, e.g. 'race = "ELF" AND level >= 3'`)
}

// filterQuery copies the flags the user actually set into query parameters
func filterQuery(fs *pflag.FlagSet) (url.Values, error) {
	q := url.Values{}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case request.ParamAfter, request.ParamBefore:
			var ms int64
			if ms, err = parseDate(f.Value.String()); err == nil {
				q.Set(f.Name, strconv.FormatInt(ms, 10))
			}
		case request.ParamName, request.ParamTitle, request.ParamRace, request.ParamProfession,
			request.ParamMinExperience, request.ParamMaxExperience, request.ParamMinLevel, request.ParamMaxLevel,
			request.ParamBanned, request.ParamFilter,
			request.ParamOrder, request.ParamDirection, request.ParamPageNumber, request.ParamPageSize:
			q.Set(f.Name, f.Value.String())
		}
	})
	return q, err
}

// parseDate accepts a date, an RFC 3339 timestamp or epoch milliseconds
func parseDate(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("invalid date %q", s)
}

func newPlayersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of matching players",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filterQuery(cmd.Flags())
			if err != nil {
				return err
			}

			var result response.PlayerPage
			if err := client.Get(cmd.Context(), playersPath("", q), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	filterFlags(cmd.Flags())
	cmd.Flags().String(request.ParamOrder, "", "Sort field: id, name, experience, birthday, level")
	cmd.Flags().String(request.ParamDirection, "", "Sort direction: asc, desc")
	cmd.Flags().Int(request.ParamPageNumber, 0, "Zero-based page number")
	cmd.Flags().Int(request.ParamPageSize, 0, "Page size (server default 3)")

	return cmd
}

func newPlayersAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "List every matching player",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filterQuery(cmd.Flags())
			if err != nil {
				return err
			}

			var result response.PlayerList
			if err := client.Get(cmd.Context(), playersPath("/all", q), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	filterFlags(cmd.Flags())
	return cmd
}

func newPlayersCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count matching players",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filterQuery(cmd.Flags())
			if err != nil {
				return err
			}

			var result response.Count
			if err := client.Get(cmd.Context(), playersPath("/count", q), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	filterFlags(cmd.Flags())
	return cmd
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Get(cmd.Context(), playerPath(id), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// playerFlags binds the writable player fields
func playerFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "Name (1-12 characters)")
	fs.String("title", "", "Title (up to 30 characters)")
	fs.String("race", "", "Race, e.g. HOBBIT")
	fs.String("profession", "", "Profession, e.g. WARRIOR")
	fs.String("birthday", "", "Birthday (YYYY-MM-DD, RFC 3339 or epoch ms)")
	fs.Int("experience", 0, "Experience points")
	fs.Bool("banned", false, "Banned status")
}

// playerBody builds a request carrying only the flags the user set
func playerBody(fs *pflag.FlagSet) (request.PlayerRequest, error) {
	var req request.PlayerRequest
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "name":
			req.Name = &v
		case "title":
			req.Title = &v
		case "race":
			req.Race = &v
		case "profession":
			req.Profession = &v
		case "birthday":
			var ms int64
			if ms, err = parseDate(v); err == nil {
				req.Birthday = &ms
			}
		case "experience":
			var n int
			if n, err = fs.GetInt("experience"); err == nil {
				req.Experience = &n
			}
		case "banned":
			var b bool
			if b, err = fs.GetBool("banned"); err == nil {
				req.Banned = &b
			}
		}
	})
	return req, err
}

func newPlayersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := playerBody(cmd.Flags())
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Post(cmd.Context(), "/api/v1/players", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	playerFlags(cmd.Flags())
	return cmd
}

func newPlayersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, err := playerBody(cmd.Flags())
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Patch(cmd.Context(), playerPath(id), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	playerFlags(cmd.Flags())
	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), playerPath(id)); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted player %d", id))
			return nil
		},
	}
}

func newPlayersSeedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create randomly generated players",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}

			gen := seed.NewGenerator(random.New(), clock.New())
			created, err := seed.Populate(cmd.Context(), client, gen, count)
			if err != nil {
				return err
			}

			players := make([]response.Player, 0, len(created))
			for _, p := range created {
				players = append(players, response.PlayerFromModel(p))
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(response.PlayerList{Players: players})
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of players to create")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", s)
	}
	return id, nil
}
