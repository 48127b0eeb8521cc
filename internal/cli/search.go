package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search published songs and users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		result, err := e.client.Search(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		if len(result.Songs) > 0 {
			fmt.Fprintln(w, "歌曲ID\t标题\t作者\t点赞\t播放")
			for _, song := range result.Songs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
					song.ID, song.Title, song.AuthorName, song.LikeCount, song.PlayCount)
			}
		}
		if len(result.Users) > 0 {
			fmt.Fprintln(w, "用户ID\t用户名\t粉丝\t简介")
			for _, user := range result.Users {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
					user.ID, user.Username, user.Followers, user.Bio)
			}
		}
		if len(result.Songs) == 0 && len(result.Users) == 0 {
			fmt.Println("没有结果")
			return nil
		}
		return w.Flush()
	},
}

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "Show the hot songs ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		works, err := e.client.FetchHotSongs(cmd.Context(), searchLimit)
		if err != nil {
			return err
		}
		if len(works) == 0 {
			fmt.Println("暂无内容")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "排名\tID\t标题\t作者\t播放")
		for i, work := range works {
			author := ""
			if work.Author != nil {
				author = work.Author.Username
			}
			title := work.Title
			if title == "" {
				title = work.Name
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\n", i+1, work.ID, title, author, work.PlayCount)
		}
		return w.Flush()
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results")
	hotCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results")
	rootCmd.AddCommand(searchCmd, hotCmd)
}
