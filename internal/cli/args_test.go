package cli

import (
	"strings"
	"testing"

	"github.com/evcraddock/sos-artisans/internal/apperr"
	"github.com/evcraddock/sos-artisans/internal/artisan"
)

// unreachable is a server URL nothing listens on; argument errors must be
// reported before any request is attempted.
const unreachable = "http://127.0.0.1:1/api"

func TestAddValidatesBeforeSending(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "add", "--nom", "A")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), artisan.MsgNomTooShort) || !strings.Contains(err.Error(), artisan.MsgContactTooShort) {
		t.Errorf("err = %q", err.Error())
	}
}

func TestAddRejectsUnknownMetier(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "add",
		"--nom", "Ali Bamba", "--metier", "jardinier", "--ville", "Abidjan",
		"--quartier", "Cocody", "--contact", "0707070707")
	if err == nil || !strings.Contains(err.Error(), "unknown metier") {
		t.Fatalf("err = %v, want unknown metier", err)
	}
}

func TestAddRejectsNoteOutOfRange(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "add",
		"--nom", "Ali Bamba", "--metier", "macon", "--ville", "Abidjan",
		"--quartier", "Cocody", "--contact", "0707070707", "--note", "7")
	if err == nil || !strings.Contains(err.Error(), artisan.MsgNoteOutOfRange) {
		t.Fatalf("err = %v, want note out of range", err)
	}
}

func TestListAcceptsNoArgs(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "list", "extra")
	if err == nil {
		t.Fatal("expected error for extra args")
	}
}

func TestListRejectsInvalidFlags(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"sort", []string{"list", "--sort", "price"}, "invalid sort"},
		{"metier", []string{"list", "--metier", "jardinier"}, "unknown metier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(append([]string{"--server", unreachable}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "show", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid artisan ID") {
		t.Fatalf("err = %v, want invalid artisan ID", err)
	}
}

func TestCommentRequiresIDAndText(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"comment"}},
		{"id only", []string{"comment", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCommentValidatesLength(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"five chars", []string{"court"}, artisan.MsgCommentTooShort},
		{"nine chars joined", []string{"trop", "cour"}, artisan.MsgCommentTooShort},
		{"nine chars padded", []string{"  " + strings.Repeat("x", 9) + "  "}, artisan.MsgCommentTooShort},
		{"ten chars joined", []string{"trop", "court"}, ""},
		{"five hundred", []string{strings.Repeat("x", 500)}, ""},
		{"five hundred one", []string{strings.Repeat("x", 501)}, artisan.MsgCommentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--server", unreachable, "comment", "1"}, tt.args...)
			_, err := executeCommand(args...)
			if err == nil {
				t.Fatal("expected error")
			}

			if tt.want != "" {
				if !strings.Contains(err.Error(), tt.want) {
					t.Fatalf("err = %v, want %q", err, tt.want)
				}
				return
			}
			// Valid text passes validation and fails on the unreachable server.
			if !strings.Contains(err.Error(), "adding comment") {
				t.Errorf("err = %v, want a transport failure after validation", err)
			}
		})
	}
}

func TestCommentsRequiresID(t *testing.T) {
	_, err := executeCommand("comments")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestRemoveRequiresID(t *testing.T) {
	_, err := executeCommand("remove")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestUpdateRequiresAField(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "update", "1")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Fatalf("err = %v, want nothing to update", err)
	}
}

func TestLinkRequiresID(t *testing.T) {
	_, err := executeCommand("link")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestSearchRequiresTerm(t *testing.T) {
	_, err := executeCommand("search")
	if err == nil {
		t.Fatal("expected error when no term provided")
	}
}

func TestServeAcceptsNoArgs(t *testing.T) {
	_, err := executeCommand("serve", "extra")
	if err == nil {
		t.Fatal("expected error for extra args")
	}
}

func TestUnreachableServer(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand("--server", unreachable, "list")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !apperr.Is(err, apperr.KindTransport) {
		t.Errorf("kind = %q, want %q", apperr.KindOf(err), apperr.KindTransport)
	}
}
