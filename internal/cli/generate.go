package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/app"
)

var (
	generateDialogueID int64
	generateModel      string
	generateNoWait     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate music from a text prompt",
	Long: `Submits a music generation task and, unless --no-wait is given, polls
until the task finishes and prints the result.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}

		task, err := e.client.ChatTask(cmd.Context(), api.ChatRequest{
			DialogueID: generateDialogueID,
			Message:    args[0],
			Model:      generateModel,
		})
		if err != nil {
			return err
		}
		id := task.Identifier()
		fmt.Printf("任务已提交: %s\n", id)
		if generateNoWait {
			return nil
		}

		interval := time.Duration(e.cfg.PollSeconds) * time.Second
		done, err := app.PollTask(cmd.Context(), e.client.FetchMusicTask, id, interval)
		if err != nil {
			return err
		}
		fmt.Println("生成完成")
		printTaskResult(done)
		return nil
	},
}

// printTaskResult renders whatever the task carried without assuming a
// fixed result schema.
func printTaskResult(task *api.Task) {
	if task == nil || len(task.Result) == 0 {
		return
	}
	var result map[string]any
	if err := json.Unmarshal(task.Result, &result); err != nil {
		fmt.Println(string(task.Result))
		return
	}
	for _, key := range []string{"music_file_id", "title", "audio_url", "cover_url", "duration"} {
		if v, ok := result[key]; ok {
			fmt.Printf("  %s: %v\n", key, v)
		}
	}
}

func init() {
	generateCmd.Flags().Int64Var(&generateDialogueID, "dialogue", 0, "Continue an existing dialogue")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Generation model")
	generateCmd.Flags().BoolVar(&generateNoWait, "no-wait", false, "Submit without waiting for completion")
	rootCmd.AddCommand(generateCmd)
}
