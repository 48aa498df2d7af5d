package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ideanet/ideas"
)

func (a *app) questionsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Show the answered questions board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, qr, err := a.repositories()
			if err != nil {
				return err
			}
			if all {
				printQuestionTable(cmd.OutOrStdout(), qr.All())
				return nil
			}
			printAnswered(cmd.OutOrStdout(), qr.Answered())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every question, including private and open ones")
	return cmd
}

func printAnswered(w io.Writer, qs []ideas.Question) {
	if len(qs) == 0 {
		subtle.Fprintln(w, "  no answered questions yet")
		return
	}
	for i, q := range qs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, brand.Sprint(q.Display()))
		fmt.Fprintf(w, "  %s\n", q.Answer.Content)
		fmt.Fprintf(w, "  %s\n", subtle.Sprintf("%s, %s", q.Answer.AnsweredBy, q.Answer.AnsweredAt.Format("2006-01-02")))
	}
}

func printQuestionTable(w io.Writer, qs []ideas.Question) {
	rows := make([][]string, 0, len(qs))
	for _, q := range qs {
		state := warn.Sprint("open")
		if q.Answered {
			state = good.Sprint("answered")
		}
		visibility := "private"
		if q.Public {
			visibility = "public"
		}
		author := q.Author.DisplayName()
		if q.Anonymous {
			author = "Anonymous"
		}
		rows = append(rows, []string{q.ID, truncate(q.Display(), 50), author, state, visibility})
	}
	table(w, []string{"ID", "QUESTION", "AUTHOR", "STATE", "VISIBILITY"}, rows)
}
