package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/config"
	"github.com/example/halovoc/pkg/models"
)

// newTagsCommand prints the ordered tag tree.
func newTagsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the tag tree in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			tree, err := a.registry.BuildOrderedTree(cmd.Context())
			if err != nil {
				return err
			}
			printNodes(tree, 0)
			return nil
		},
	}
}

func printNodes(nodes []*models.TagNode, depth int) {
	for _, n := range nodes {
		fmt.Printf("%s%s\n", strings.Repeat("  ", depth), n.Name)
		printNodes(n.Children, depth+1)
	}
}
