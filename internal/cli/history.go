package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
)

var historyType string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generation and analysis history",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		page, err := e.client.FetchHistory(cmd.Context(), api.HistoryQuery{
			Type:  historyType,
			Limit: e.cfg.DefaultLimit,
		})
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			fmt.Println("暂无记录")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t类型\t标题\t时间")
		for _, item := range page.Items {
			fmt.Fprintf(w, "%v\t%s\t%s\t%s\n",
				item["id"],
				stringField(item, "type"),
				firstStringField(item, "title", "prompt", "filename"),
				format.BeijingTime(stringField(item, "created_at")))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one history record in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("无效的记录 ID: %s", args[0])
		}

		var item api.HistoryItem
		if historyType == "emotion" {
			item, err = e.client.FetchEmotionDetail(cmd.Context(), id)
		} else {
			item, err = e.client.FetchDialogueDetail(cmd.Context(), id)
		}
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}

func stringField(item api.HistoryItem, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

func firstStringField(item api.HistoryItem, keys ...string) string {
	for _, key := range keys {
		if v := stringField(item, key); v != "" {
			return v
		}
	}
	return ""
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyType, "type", "", "Record type: dialogue or emotion")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
