package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Events(ctx context.Context) error {
	f.calls = append(f.calls, "events")
	return nil
}
func (f *fakeExec) Event(ctx context.Context, id string) error {
	f.calls = append(f.calls, "event")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) RegisterEvent(ctx context.Context, id string) error {
	f.calls = append(f.calls, "register-event")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) MyRegistrations(ctx context.Context) error {
	f.calls = append(f.calls, "my-registrations")
	return nil
}
func (f *fakeExec) Notifications(ctx context.Context) error {
	f.calls = append(f.calls, "notifications")
	return nil
}
func (f *fakeExec) Read(ctx context.Context, id string) error {
	f.calls = append(f.calls, "read")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) ReadAll(ctx context.Context) error {
	f.calls = append(f.calls, "read-all")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Dashboard(ctx context.Context) error {
	f.calls = append(f.calls, "dashboard")
	return nil
}
func (f *fakeExec) Health(ctx context.Context) error {
	f.calls = append(f.calls, "health")
	return nil
}

func silencePrint(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"events",
		"event e42",
		"register-event e42",
		"notifications",
		"read n7",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "events", "event", "register-event", "notifications", "read"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if len(exec.args) != 3 || exec.args[0] != "e42" || exec.args[1] != "e42" || exec.args[2] != "n7" {
		t.Fatalf("argument mismatch: %v", exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader("event\nread\nregister-event\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFExits(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
