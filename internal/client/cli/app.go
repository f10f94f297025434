package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/services"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
)

// SessionModel is the part of services.SessionStore the CLI drives.
type SessionModel interface {
	State() services.State
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string, avatar *models.AvatarFile) error
	SignOut(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// ProfileModel is implemented by services.ProfileSync.
type ProfileModel interface {
	FetchProfile(ctx context.Context, userID string) (*models.Profile, error)
	ChangeAvatar(ctx context.Context, f *models.AvatarFile) (string, error)
}

// HistoryModel is implemented by services.HistoryRepository.
type HistoryModel interface {
	Refetch(ctx context.Context) error
	Snapshot() services.HistorySnapshot
	Clear()
}

// GeneratorModel is implemented by services.Generator.
type GeneratorModel interface {
	Generate(ctx context.Context, topic, topicContext string, style models.Style) (string, error)
	Gallery() []string
}

// Downloader is implemented by client.Downloader.
type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// Deps wires App to the session model. In and Out default to the process
// stdin and stdout; DownloadDir defaults to the working directory.
type Deps struct {
	Session     SessionModel
	Profiles    ProfileModel
	History     HistoryModel
	Generator   GeneratorModel
	Downloader  Downloader
	Logger      logging.Logger
	In          io.Reader
	Out         io.Writer
	DownloadDir string
}

type App struct {
	session     SessionModel
	profiles    ProfileModel
	history     HistoryModel
	generator   GeneratorModel
	downloader  Downloader
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	downloadDir string
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	dir := d.DownloadDir
	if dir == "" {
		dir = "."
	}

	return &App{
		session:     d.Session,
		profiles:    d.Profiles,
		history:     d.History,
		generator:   d.Generator,
		downloader:  d.Downloader,
		logger:      logger,
		reader:      bufio.NewReader(in),
		out:         out,
		downloadDir: dir,
	}
}

// Run prints the greeting and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to ThumbKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().User != nil
}

func (a *App) status() string {
	st := a.session.State()
	if st.User == nil {
		return "(" + st.Status.String() + ")"
	}
	return "(" + st.User.Email + ")"
}

func (a *App) currentUserID() string {
	st := a.session.State()
	if st.User == nil {
		return ""
	}
	return st.User.ID
}
