package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
)

var likeCmd = &cobra.Command{
	Use:   "like <work-id>",
	Short: "Toggle a like on a work",
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

		work, err := e.client.FetchPublicWork(cmd.Context(), id)
		if err != nil {
			return err
		}
		var result *api.ToggleResult
		if work.Liked {
			result, err = e.client.UnlikeWork(cmd.Context(), id)
		} else {
			result, err = e.client.LikeWork(cmd.Context(), id)
		}
		if err != nil {
			return err
		}
		if result.Liked != nil && *result.Liked {
			fmt.Println("已点赞")
			return nil
		}
		fmt.Println("已取消点赞")
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Toggle following a user",
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
			return fmt.Errorf("无效的用户 ID: %s", args[0])
		}

		user, err := e.client.FetchPublicUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		var result *api.ToggleResult
		if user.IsFollowed {
			result, err = e.client.UnfollowUser(cmd.Context(), id)
		} else {
			result, err = e.client.FollowUser(cmd.Context(), id)
		}
		if err != nil {
			return err
		}
		if result.Followed != nil && *result.Followed {
			fmt.Printf("已关注 %s\n", user.Username)
			return nil
		}
		fmt.Printf("已取消关注 %s\n", user.Username)
		return nil
	},
}

var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List the works you liked",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		works, err := e.client.FetchLikedWorks(cmd.Context())
		if err != nil {
			return err
		}
		if len(works) == 0 {
			fmt.Println("还没有点赞的作品")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t标题\t作者")
		for _, work := range works {
			author := ""
			if work.Author != nil {
				author = work.Author.Username
			}
			title := work.Title
			if title == "" {
				title = work.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", work.ID, title, author)
		}
		return w.Flush()
	},
}

var (
	userShowFollowers bool
	userShowFollowing bool
)

var userCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "Show a user's public profile and works",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("无效的用户 ID: %s", args[0])
		}

		user, err := e.client.FetchPublicUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("%s  粉丝 %d  关注 %d\n", user.Username, user.Followers, user.Following)
		if user.Bio != "" {
			fmt.Println(user.Bio)
		}

		if userShowFollowers || userShowFollowing {
			var list []api.PublicUser
			if userShowFollowers {
				list, err = e.client.FetchFollowers(cmd.Context(), id)
			} else {
				list, err = e.client.FetchFollowing(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			for _, u := range list {
				fmt.Printf("  %d  %s\n", u.ID, u.Username)
			}
			return nil
		}

		works, err := e.client.FetchPublicWorksByUser(cmd.Context(), id, e.cfg.DefaultLimit)
		if err != nil {
			return err
		}
		if len(works) == 0 {
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t标题\t点赞\t播放")
		for _, work := range works {
			title := work.Title
			if title == "" {
				title = work.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", work.ID, title, work.LikeCount, work.PlayCount)
		}
		return w.Flush()
	},
}

func init() {
	userCmd.Flags().BoolVar(&userShowFollowers, "followers", false, "List followers instead of works")
	userCmd.Flags().BoolVar(&userShowFollowing, "following", false, "List followed users instead of works")
	rootCmd.AddCommand(likeCmd, followCmd, likedCmd, userCmd)
}
