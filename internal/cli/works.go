package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
	"github.com/cantoapp/canto/internal/state"
)

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "Manage your works",
}

var worksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your works",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		works, err := e.client.FetchWorks(cmd.Context(), api.WorksQuery{Limit: e.cfg.DefaultLimit})
		if err != nil {
			return err
		}
		if len(works) == 0 {
			fmt.Println("还没有作品")
			return nil
		}
		origin := e.client.Origin()
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t标题\t状态\t可见性\t创建时间")
		for _, work := range works {
			work = state.NormalizeWork(origin, work)
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				work.ID, work.Title, work.Status, work.Visibility,
				format.BeijingTime(work.CreatedAt))
		}
		return w.Flush()
	},
}

var (
	workTitle       string
	workDescription string
	workTags        string
	workVisibility  string
)

var worksCreateCmd = &cobra.Command{
	Use:   "create <music-file-id>",
	Short: "Save a generated music file as a work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		musicFileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("无效的音乐文件 ID: %s", args[0])
		}
		work, err := e.client.CreateWork(cmd.Context(), api.WorkDraft{
			MusicFileID: musicFileID,
			Title:       workTitle,
			Description: workDescription,
			Tags:        workTags,
			Visibility:  workVisibility,
		})
		if err != nil {
			return err
		}
		fmt.Printf("已保存作品 %d: %s\n", work.ID, work.Title)
		return nil
	},
}

var worksPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a work publicly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateWork(cmd, args[0], map[string]any{
			"status":     api.WorkStatusPublished,
			"visibility": api.VisibilityPublic,
		}, "已发布作品 %d\n")
	},
}

var worksUnpublishCmd = &cobra.Command{
	Use:   "unpublish <id>",
	Short: "Make a work private again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateWork(cmd, args[0], map[string]any{
			"visibility": api.VisibilityPrivate,
		}, "作品 %d 已设为私密\n")
	},
}

var worksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a work",
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
			return fmt.Errorf("无效的作品 ID: %s", args[0])
		}
		if err := e.client.DeleteWork(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("已删除作品 %d\n", id)
		return nil
	},
}

var worksCoverCmd = &cobra.Command{
	Use:   "cover <id> <image-file>",
	Short: "Upload a cover image for a work",
	Args:  cobra.ExactArgs(2),
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
			return fmt.Errorf("无效的作品 ID: %s", args[0])
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		coverURL, err := e.client.UploadWorkCover(cmd.Context(), filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		if _, err := e.client.UpdateWork(cmd.Context(), id, map[string]any{"cover_url": coverURL}); err != nil {
			return err
		}
		fmt.Printf("封面已更新: %s\n", coverURL)
		return nil
	},
}

var coverPrompt string

var worksGenCoverCmd = &cobra.Command{
	Use:   "gen-cover <music-file-id>",
	Short: "Generate an AI cover for a music file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		musicFileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("无效的音乐文件 ID: %s", args[0])
		}
		result, err := e.client.GenerateCover(cmd.Context(), api.CoverRequest{
			MusicFileID: musicFileID,
			Prompt:      coverPrompt,
		})
		if err != nil {
			return err
		}
		if url, ok := result["cover_url"].(string); ok && url != "" {
			fmt.Printf("封面已生成: %s\n", url)
			return nil
		}
		fmt.Println("封面已生成")
		return nil
	},
}

func updateWork(cmd *cobra.Command, rawID string, fields map[string]any, doneFormat string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.requireLogin(); err != nil {
		return err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("无效的作品 ID: %s", rawID)
	}
	if _, err := e.client.UpdateWork(cmd.Context(), id, fields); err != nil {
		return err
	}
	fmt.Printf(doneFormat, id)
	return nil
}

func init() {
	worksCreateCmd.Flags().StringVar(&workTitle, "title", "", "Work title")
	worksCreateCmd.Flags().StringVar(&workDescription, "description", "", "Work description")
	worksCreateCmd.Flags().StringVar(&workTags, "tags", "", "Comma-separated tags")
	worksCreateCmd.Flags().StringVar(&workVisibility, "visibility", "", "public, unlisted, or private")

	worksGenCoverCmd.Flags().StringVar(&coverPrompt, "prompt", "", "Cover style prompt")

	worksCmd.AddCommand(worksListCmd, worksCreateCmd, worksPublishCmd, worksUnpublishCmd, worksDeleteCmd, worksCoverCmd, worksGenCoverCmd)
	rootCmd.AddCommand(worksCmd)
}
