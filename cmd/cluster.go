package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster the corpus into groups of related contracts",
	Long:  `Partitions all indexed documents into k groups by content similarity. The same corpus always produces the same clustering.`,
	RunE:  runCluster,
}

func init() {
	clusterCmd.Flags().Int("k", 3, "number of clusters")
	clusterCmd.Flags().Bool("json", false, "output clusters as JSON")
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
	k, _ := cmd.Flags().GetInt("k")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	clusters := engine.Cluster(k)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(clusters)
	}

	ids := make([]int, 0, len(clusters))
	for c := range clusters {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	for _, c := range ids {
		fmt.Printf("Cluster %d (%d documents):\n", c, len(clusters[c]))
		for _, docID := range clusters[c] {
			if doc, ok := engine.Document(docID); ok {
				fmt.Printf("  - %s\n", doc.FileName())
			} else {
				fmt.Printf("  - %s\n", docID)
			}
		}
	}
	return nil
}
