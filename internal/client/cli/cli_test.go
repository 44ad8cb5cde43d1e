package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/client/api"
	"github.com/GLee998/church-database-bot/internal/client/iocli"
	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

// newTestIO собирает вывод в буфер и отдает ввод по очереди
func newTestIO(inputs ...string) (*iocli.IOMock, *bytes.Buffer) {
	var (
		mu  sync.Mutex
		out bytes.Buffer
	)
	next := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(inputs) == 0 {
			return "", errors.New("no more input")
		}
		v := inputs[0]
		inputs = inputs[1:]
		return v, nil
	}
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) { fmt.Fprintln(&out, a...) },
		PrintfFunc:  func(format string, a ...any) { fmt.Fprintf(&out, format, a...) },
		WriteFunc:   func(p []byte) (int, error) { return out.Write(p) },
		ReadInputFunc: func(prompt string) (string, error) {
			return next()
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return next()
		},
	}, &out
}

func testSchema() *apimodels.SchemaResponse {
	return &apimodels.SchemaResponse{
		UnassignedGroup: "Без домашки",
		Fields: []apimodels.SchemaField{
			{Key: "first_name", Header: "Имя", Type: "string", Required: true},
			{Key: "last_name", Header: "Фамилия", Type: "string"},
			{Key: "group", Header: "Домашка", Type: "enum", Values: []string{"Youth", "Family"}},
		},
	}
}

// run выполняет команду с клиентом-заглушкой
func run(t *testing.T, client Client, io iocli.IO, args ...string) error {
	t.Helper()
	t.Setenv("ROSTER_TOKEN", "")
	t.Setenv("ROSTER_SERVER", "")
	t.Setenv("ROSTER_AUTH_SECRET", "")

	root := NewRootCommand(io, func(server, token string) Client { return client }, "test")
	root.SetArgs(append([]string{"--token", "tok"}, args...))
	return root.ExecuteContext(context.Background())
}

func TestRootCommand_RequiresToken(t *testing.T) {
	t.Setenv("ROSTER_TOKEN", "")
	io, _ := newTestIO()

	root := NewRootCommand(io, func(server, token string) Client { return &ClientMock{} }, "test")
	root.SetArgs([]string{"status"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_TOKEN")
}

func TestRootCommand_TokenFromEnv(t *testing.T) {
	t.Setenv("ROSTER_TOKEN", "env-token")
	t.Setenv("ROSTER_SERVER", "")
	io, _ := newTestIO()

	var gotServer, gotToken string
	client := &ClientMock{
		StatusFunc: func(ctx context.Context) (*apimodels.StatusResponse, error) {
			return &apimodels.StatusResponse{Records: 5}, nil
		},
	}
	root := NewRootCommand(io, func(server, token string) Client {
		gotServer, gotToken = server, token
		return client
	}, "test")
	root.SetArgs([]string{"--server", "http://roster.local", "status"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Equal(t, "http://roster.local", gotServer)
	assert.Equal(t, "env-token", gotToken)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "stale", err: &api.Error{StatusCode: 412, Code: apimodels.CodeStaleWrite, Message: "x"}, want: "changed since you loaded it"},
		{name: "conflict", err: &api.Error{StatusCode: 409, Code: apimodels.CodeConflict, Message: "x"}, want: "same time"},
		{name: "unrecognized", err: &api.Error{StatusCode: 422, Code: apimodels.CodeUnrecognizedIntent}, want: "not about the roster"},
		{name: "retriable", err: &api.Error{StatusCode: 503, Code: apimodels.CodeRemoteUnavailable, Message: "sheet down", Retriable: true}, want: "sheet down (temporary"},
		{name: "plain", err: errors.New("dial tcp: refused"), want: "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, describeError(fmt.Errorf("wrapped: %w", tt.err)).Error(), tt.want)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		want    map[string]string
		wantErr bool
	}{
		{name: "values", items: []string{"first_name=Анна", " group = Youth "}, want: map[string]string{"first_name": "Анна", "group": "Youth"}},
		{name: "clear", items: []string{"photo="}, want: map[string]string{"photo": ""}},
		{name: "no equals", items: []string{"first_name"}, wantErr: true},
		{name: "empty key", items: []string{"=x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.items)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusCommand(t *testing.T) {
	io, out := newTestIO()
	client := &ClientMock{
		StatusFunc: func(ctx context.Context) (*apimodels.StatusResponse, error) {
			return &apimodels.StatusResponse{
				Records:       42,
				SyncToken:     "0123456789abcdef",
				LastError:     "sheet unavailable",
				SnapshotInfo:  apimodels.SnapshotInfo{AgeSeconds: -1, Stale: true},
				PendingWrites: []apimodels.PendingWrite{{ID: "r1", State: "local-applied", BaseRevision: 2}},
				Quarantined:   []apimodels.QuarantinedRow{{Row: 7, Reason: "invalid birth date"}},
			}, nil
		},
	}

	require.NoError(t, run(t, client, io, "status"))

	text := out.String()
	assert.Contains(t, text, "Records:      42")
	assert.Contains(t, text, "Last sync:    never")
	assert.Contains(t, text, "State:        stale")
	assert.Contains(t, text, "Sync token:   0123456789ab\n")
	assert.Contains(t, text, "r1 local-applied (base revision 2)")
	assert.Contains(t, text, "row 7: invalid birth date")
}

func TestSyncCommand_Forbidden(t *testing.T) {
	io, _ := newTestIO()
	client := &ClientMock{
		SyncFunc: func(ctx context.Context) (*apimodels.StatusResponse, error) {
			return nil, fmt.Errorf("sync request failed: %w", &api.Error{StatusCode: 403, Code: apimodels.CodeForbidden, Message: "admin only"})
		},
	}

	err := run(t, client, io, "sync")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "access denied"))
}
