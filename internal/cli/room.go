package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomListCmd())
	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomTimeCmd())
	cmd.AddCommand(newRoomDeleteCmd())

	return cmd
}

func roomPath(id string) string {
	return "/api/v1/rooms/" + url.PathEscape(id)
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open rooms, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList

			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRoomCreateCmd() *cobra.Command {
	var (
		strs  = map[string]*string{}
		bools = map[string]*bool{}
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a seed and open a room for it",
		Long: `Generate a seed with the given settings and open a room for it.
Settings left unset use the server defaults; see "seedroom settings".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			for name, v := range strs {
				if cmd.Flags().Changed(name) {
					req[name] = *v
				}
			}
			for name, v := range bools {
				if cmd.Flags().Changed(name) {
					req[name] = *v
				}
			}

			var result Room
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	for _, name := range []string{"difficulty", "goal", "logic", "mode", "variation", "weapons", "lang"} {
		strs[name] = cmd.Flags().String(name, "", "Seed "+name)
	}
	for _, name := range []string{"enemizer", "spoilers", "tournament"} {
		bools[name] = cmd.Flags().Bool(name, false, "Enable "+name)
	}

	return cmd
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Get(roomPath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(roomPath(args[0])+"/join", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(roomPath(args[0])+"/leave", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Left room " + args[0])
			return nil
		},
	}
}

func newRoomTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time <id> <h:mm:ss>",
		Short: "Report your finishing time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseFinishTime(args[1])
			if err != nil {
				return err
			}

			var result Room
			if err := client.Put(roomPath(args[0])+"/time", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRoomDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a room you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(roomPath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Removed room " + args[0])
			return nil
		},
	}
}

// parseFinishTime accepts h:mm:ss, mm:ss or ss. Range checks are left to
// the server so the messages match the web form.
func parseFinishTime(s string) (map[string]int, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid time %q: want h:mm:ss", s)
	}

	values := make([]int, 3)
	offset := 3 - len(parts)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: want h:mm:ss", s)
		}
		values[offset+i] = n
	}

	return map[string]int{
		"hours":   values[0],
		"minutes": values[1],
		"seconds": values[2],
	}, nil
}
