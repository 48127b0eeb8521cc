// Package nav holds the route table and the auth guard shared by the TUI
// and the CLI. Routes mirror the platform's page structure; the guard
// decides what happens when a logged-out user targets a protected route.
package nav

import "strings"

// LoginRequiredMessage is shown when a protected route is blocked.
const LoginRequiredMessage = "请先进行登录"

// Route is one navigable destination.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
}

// Home is the fallback destination for redirects.
const Home = "/"

var routes = []Route{
	{Path: "/", Name: "home", Title: "首页"},
	{Path: "/generate", Name: "generate", Title: "音乐生成"},
	{Path: "/emotion", Name: "emotion", Title: "情绪分析"},
	{Path: "/works", Name: "works", Title: "我的作品", RequiresAuth: true},
	{Path: "/search", Name: "search", Title: "搜索"},
	{Path: "/song/:id", Name: "song", Title: "歌曲详情"},
	{Path: "/user/:id", Name: "user", Title: "用户主页"},
	{Path: "/history", Name: "history", Title: "历史记录"},
	{Path: "/notifications", Name: "notifications", Title: "消息通知"},
	{Path: "/account", Name: "account", Title: "账号设置"},
	{Path: "/profile", Name: "profile", Title: "个人资料"},
}

// Routes returns the full route table.
func Routes() []Route {
	dup := make([]Route, len(routes))
	copy(dup, routes)
	return dup
}

// Lookup resolves a concrete path against the table, matching one-segment
// parameters. The second return reports whether the path is known.
func Lookup(path string) (Route, bool) {
	for _, r := range routes {
		if matches(r.Path, path) {
			return r, true
		}
	}
	return Route{}, false
}

func matches(pattern, path string) bool {
	if pattern == path {
		return true
	}
	pp := strings.Split(pattern, "/")
	sp := strings.Split(path, "/")
	if len(pp) != len(sp) {
		return false
	}
	for i := range pp {
		if strings.HasPrefix(pp[i], ":") {
			if sp[i] == "" {
				return false
			}
			continue
		}
		if pp[i] != sp[i] {
			return false
		}
	}
	return true
}

// Decision is the guard's verdict on a navigation attempt.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// Redirect sends the user to Result.Target instead.
	Redirect
	// Block keeps the user where they are.
	Block
)

// Result is what the guard tells the caller to do.
type Result struct {
	Decision  Decision
	Target    string
	Message   string
	OpenLogin bool
}

// Guard checks a navigation from one path to another. Protected routes
// are only reachable logged in; a blocked attempt prompts for login. The
// user is moved home only when they have nowhere sensible to stay — a
// direct entry from the root — otherwise they remain on the current page
// with the login panel open.
func Guard(from, to string, loggedIn bool) Result {
	route, known := Lookup(to)
	if !known || !route.RequiresAuth || loggedIn {
		return Result{Decision: Allow, Target: to}
	}
	if from == Home {
		return Result{Decision: Redirect, Target: Home, Message: LoginRequiredMessage, OpenLogin: true}
	}
	return Result{Decision: Block, Target: from, Message: LoginRequiredMessage, OpenLogin: true}
}
