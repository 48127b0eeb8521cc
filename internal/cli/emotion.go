package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/app"
)

var emotionNoWait bool

var emotionCmd = &cobra.Command{
	Use:   "emotion <audio-file>",
	Short: "Run emotion analysis on an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		task, err := e.client.AnalyzeMusicTask(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Printf("任务已提交: %s\n", task.Identifier())
		if emotionNoWait {
			return nil
		}
		interval := time.Duration(e.cfg.PollSeconds) * time.Second
		done, err := app.PollTask(cmd.Context(), e.client.FetchEmotionTask, task.Identifier(), interval)
		if err != nil {
			return err
		}
		fmt.Println("分析完成")
		printTaskResult(done)
		return nil
	},
}

func init() {
	emotionCmd.Flags().BoolVar(&emotionNoWait, "no-wait", false, "Submit without waiting for completion")
	rootCmd.AddCommand(emotionCmd)
}
