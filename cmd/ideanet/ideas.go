package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ideanet/ideas"
)

func (a *app) ideasCmd() *cobra.Command {
	var (
		search string
		tag    string
		sort   string
	)
	cmd := &cobra.Command{
		Use:     "ideas",
		Aliases: []string{"explore"},
		Short:   "List the ideas in the idea box",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, _, err := a.repositories()
			if err != nil {
				return err
			}
			order, err := ideas.ParseSort(sort)
			if err != nil {
				return err
			}
			list, err := ir.List(ideas.Query{Search: search, Tag: tag, Sort: order})
			if err != nil {
				return err
			}
			printIdeas(cmd.OutOrStdout(), list)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&search, "search", "s", "", "match title, description, author or tags")
	f.StringVarP(&tag, "tag", "t", "", "only ideas with exactly this tag")
	f.StringVar(&sort, "sort", "date", "date, date_asc or title")

	cmd.AddCommand(a.ideaShowCmd(), a.ideaTagsCmd())
	return cmd
}

func (a *app) ideaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one idea with its contributors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, _, err := a.repositories()
			if err != nil {
				return err
			}
			idea, err := ir.Get(args[0])
			if err != nil {
				return err
			}
			printIdea(cmd.OutOrStdout(), idea)
			return nil
		},
	}
}

func (a *app) ideaTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, _, err := a.repositories()
			if err != nil {
				return err
			}
			for _, t := range ir.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func printIdeas(w io.Writer, list []ideas.Idea) {
	rows := make([][]string, 0, len(list))
	for _, idea := range list {
		rows = append(rows, []string{
			idea.ID,
			truncate(idea.Title, 40),
			idea.AuthorName(),
			idea.CreatedAt.Format("2006-01-02"),
			strings.Join(idea.Tags, ", "),
		})
	}
	table(w, []string{"ID", "TITLE", "AUTHOR", "DATE", "TAGS"}, rows)
}

func printIdea(w io.Writer, idea ideas.Idea) {
	fmt.Fprintln(w, brand.Sprint(idea.Title))
	if idea.Description != "" {
		fmt.Fprintln(w, subtle.Sprint(idea.Description))
	}
	fmt.Fprintln(w)
	field(w, "ID", idea.ID)
	field(w, "Author", idea.AuthorName())
	field(w, "Created", idea.CreatedAt.Format("2006-01-02 15:04"))
	field(w, "Status", string(idea.Progress))
	field(w, "Tags", strings.Join(idea.Tags, ", "))

	if len(idea.Contributors) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(idea.Contributors))
		for _, c := range idea.Contributors {
			rows = append(rows, []string{c.User.DisplayName(), string(c.Role), string(c.User.Status)})
		}
		table(w, []string{"CONTRIBUTOR", "ROLE", "STATUS"}, rows)
	}
}
