package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/services"
)

type fakeSession struct {
	state     services.State
	signIns   []string
	signUps   []string
	avatar    *models.AvatarFile
	signOuts  int
	deletions int
	err       error
	deleteErr error
}

func (f *fakeSession) State() services.State { return f.state }

func (f *fakeSession) login(email string) {
	f.state = services.State{
		Status: services.StatusAuthenticated,
		User:   &models.User{ID: "user-1", Email: email},
	}
}

func (f *fakeSession) SignIn(ctx context.Context, email, password string) error {
	f.signIns = append(f.signIns, email+":"+password)
	if f.err != nil {
		return f.err
	}
	f.login(email)
	return nil
}

func (f *fakeSession) SignUp(ctx context.Context, email, password string, avatar *models.AvatarFile) error {
	f.signUps = append(f.signUps, email+":"+password)
	f.avatar = avatar
	if f.err != nil {
		return f.err
	}
	f.login(email)
	return nil
}

func (f *fakeSession) SignOut(ctx context.Context) error {
	f.signOuts++
	f.state = services.State{Status: services.StatusAnonymous}
	return f.err
}

func (f *fakeSession) DeleteAccount(ctx context.Context) error {
	f.deletions++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.state = services.State{Status: services.StatusAnonymous}
	return nil
}

type fakeProfiles struct {
	session *fakeSession
	profile *models.Profile
	fetched []string
	changed []*models.AvatarFile
	err     error
	mu      sync.Mutex
}

func (f *fakeProfiles) FetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, userID)
	if f.err != nil {
		return nil, f.err
	}
	f.session.state.Profile = f.profile
	return f.profile, nil
}

func (f *fakeProfiles) ChangeAvatar(ctx context.Context, file *models.AvatarFile) (string, error) {
	f.changed = append(f.changed, file)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/" + file.Name, nil
}

type fakeHistory struct {
	snap     services.HistorySnapshot
	refetchs int
	clears   int
	err      error
	mu       sync.Mutex
}

func (f *fakeHistory) Refetch(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refetchs++
	return f.err
}

func (f *fakeHistory) Snapshot() services.HistorySnapshot { return f.snap }

func (f *fakeHistory) Clear() {
	f.clears++
	f.snap = services.HistorySnapshot{}
}

type genCall struct {
	topic, topicContext string
	style               models.Style
}

type fakeGenerator struct {
	calls   []genCall
	gallery []string
	url     string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, topic, topicContext string, style models.Style) (string, error) {
	f.calls = append(f.calls, genCall{topic, topicContext, style})
	if f.err != nil {
		return "", f.err
	}
	f.gallery = append([]string{f.url}, f.gallery...)
	return f.url, nil
}

func (f *fakeGenerator) Gallery() []string { return f.gallery }

type fakeDownloader struct {
	urls []string
	body string
	err  error
}

func (f *fakeDownloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return 0, f.err
	}
	n, err := io.Copy(w, strings.NewReader(f.body))
	return n, err
}

type testApp struct {
	*App
	session    *fakeSession
	profiles   *fakeProfiles
	history    *fakeHistory
	generator  *fakeGenerator
	downloader *fakeDownloader
	out        *bytes.Buffer
}

// newTestApp builds an App whose prompts read lines from input.
func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()
	s := &fakeSession{state: services.State{Status: services.StatusAnonymous}}
	ta := &testApp{
		session:    s,
		profiles:   &fakeProfiles{session: s},
		history:    &fakeHistory{},
		generator:  &fakeGenerator{url: "https://img.test/new.png"},
		downloader: &fakeDownloader{body: "PNGDATA"},
		out:        &bytes.Buffer{},
	}
	ta.App = NewApp(Deps{
		Session:     ta.session,
		Profiles:    ta.profiles,
		History:     ta.history,
		Generator:   ta.generator,
		Downloader:  ta.downloader,
		In:          strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:         ta.out,
		DownloadDir: t.TempDir(),
	})
	return ta
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		var parts []string
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
