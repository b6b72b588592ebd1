package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// newCommandTree builds the command table for one line of input. A fresh
// tree per line keeps flag values from leaking between commands.
func (s *Shell) newCommandTree() *cobra.Command {
	root := &cobra.Command{
		Use:           "assistant",
		Short:         "Address book assistant",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%w: unknown command %q", errInvalidCommand, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errInvalidCommand, err)
	})

	root.AddCommand(
		s.helloCmd(),
		s.addCmd(),
		s.changeCmd(),
		s.phoneCmd(),
		s.findPhoneCmd(),
		s.removePhoneCmd(),
		s.deleteCmd(),
		s.showCmd(),
		s.allCmd(),
		s.exitCmd(),
	)
	return root
}

// exactArgs is cobra.ExactArgs reporting errInvalidCommand.
func exactArgs(n int) cobra.PositionalArgs {
	return rangeArgs(n, n)
}

// rangeArgs is cobra.RangeArgs reporting errInvalidCommand.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errInvalidCommand, err)
		}
		return nil
	}
}

func (s *Shell) helloCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Greet the assistant",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "How can I help you?")
		},
	}
}

func (s *Shell) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [phone]",
		Short: "Add a contact, or a phone to an existing contact",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			rec, err := s.book.Find(name)
			created := false
			if errors.Is(err, types.ErrNotFound) {
				if rec, err = types.NewRecord(name); err != nil {
					return err
				}
				created = true
			} else if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := rec.AddPhone(args[1]); err != nil {
					return err
				}
			} else if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "Contact already exists.")
				return nil
			}

			if created {
				s.book.AddRecord(rec)
				level.Debug(s.logger).Log("msg", "contact added", "name", name, "id", rec.ID)
				fmt.Fprintln(cmd.OutOrStdout(), "Contact added.")
				return nil
			}
			level.Debug(s.logger).Log("msg", "contact updated", "name", name, "phones", rec.Len())
			fmt.Fprintln(cmd.OutOrStdout(), "Contact updated.")
			return nil
		},
	}
}

func (s *Shell) changeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change <name> <old-phone> <new-phone>",
		Short: "Replace a contact's phone",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := s.book.Find(args[0])
			if err != nil {
				return err
			}
			if err := rec.EditPhone(args[1], args[2]); err != nil {
				return err
			}
			level.Debug(s.logger).Log("msg", "phone changed", "name", args[0], "old", args[1], "new", args[2])
			fmt.Fprintln(cmd.OutOrStdout(), "Contact updated.")
			return nil
		},
	}
}

func (s *Shell) phoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phone <name>",
		Short: "Show a contact's phones",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := s.book.Find(args[0])
			if err != nil {
				return err
			}
			if rec.Len() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no phones.\n", rec.Name())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinPhones(rec))
			return nil
		},
	}
}

func (s *Shell) findPhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-phone <name> <phone>",
		Short: "Check that a contact holds a phone",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := s.book.Find(args[0])
			if err != nil {
				return err
			}
			p, err := rec.FindPhone(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (s *Shell) removePhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-phone <name> <phone>",
		Short: "Remove a phone from a contact",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := s.book.Find(args[0])
			if err != nil {
				return err
			}
			if err := rec.RemovePhone(args[1]); err != nil {
				return err
			}
			level.Debug(s.logger).Log("msg", "phone removed", "name", args[0], "phone", args[1])
			fmt.Fprintln(cmd.OutOrStdout(), "Phone removed.")
			return nil
		},
	}
}

func (s *Shell) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a contact and its phones",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.book.Delete(args[0]); err != nil {
				return err
			}
			level.Debug(s.logger).Log("msg", "contact deleted", "name", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "Contact deleted.")
			return nil
		},
	}
}

func (s *Shell) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a contact",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := s.book.Find(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func (s *Shell) allCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "all",
		Short: "List all contacts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := s.cfg.Output
			if jsonOut {
				format = OutputJSON
			}
			return renderBook(cmd.OutOrStdout(), s.book, format)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func (s *Shell) exitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "exit",
		Aliases: []string{"close"},
		Short:   "Leave the assistant",
		Args:    exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			s.done = true
			fmt.Fprintln(cmd.OutOrStdout(), msgGoodbye)
		},
	}
}

func joinPhones(r *types.Record) string {
	phones := r.Phones()
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}
