package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

type forumView struct {
	state  *SharedState
	load   loader
	form   formPanel
	search searchBar
	posts  []domain.ForumPost
}

type forumLoadedMsg struct {
	posts []domain.ForumPost
	err   error
}

type postCreatedMsg struct {
	post *domain.ForumPost
	err  error
}

func newForumView(state *SharedState) *forumView {
	return &forumView{state: state, load: newLoader(), search: newSearchBar("title, body or author")}
}

func (v *forumView) Init() tea.Cmd { return v.reload() }

func (v *forumView) reload() tea.Cmd {
	query, community := v.search.query, v.state.App.Community
	return v.load.start(fetch(func(ctx context.Context) ([]domain.ForumPost, error) {
		return community.Forum(ctx, query)
	}, func(ps []domain.ForumPost, err error) tea.Msg {
		return forumLoadedMsg{posts: ps, err: err}
	}))
}

func (v *forumView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forumLoadedMsg:
		v.load.done(msg.err)
		v.posts = msg.posts
		return v, nil
	case postCreatedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.posts = prepend(v.posts, *msg.post)
		return v, flash(formatter.StyleGreen.Render("Posted " + msg.post.Title))
	case spinner.TickMsg:
		return v, v.load.update(msg)
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}
	if v.search.focused() {
		submitted, cmd := v.search.update(msg)
		if submitted {
			return v, v.reload()
		}
		return v, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keyReload):
			return v, v.reload()
		case key.Matches(k, keySearch):
			return v, v.search.focus()
		case key.Matches(k, keyNew):
			in := &domain.ForumPostInput{}
			community := v.state.App.Community
			return v, v.form.open("New post", forumPostForm(in), func() tea.Cmd {
				return func() tea.Msg {
					p, err := community.Post(context.Background(), *in)
					return postCreatedMsg{post: p, err: err}
				}
			})
		}
	}
	return v, nil
}

func (v *forumView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.search.view() + v.load.render(func() string {
		return formatter.FormatForum(v.posts, v.state.App.now())
	})
}

func (v *forumView) Page() navigation.Page { return navigation.Forum }

func (v *forumView) ShortHelp() []key.Binding {
	if v.CapturesInput() {
		return nil
	}
	return []key.Binding{keyNew, keySearch, keyReload}
}

func (v *forumView) CapturesInput() bool { return v.form.active() || v.search.focused() }
