package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/application"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/domain"
)

// useTempStore points the CLI at a fresh SQLite file.
func useTempStore(t *testing.T) {
	t.Helper()
	t.Setenv("DOGS_DB_DRIVER", "sqlite")
	t.Setenv("DOGS_DB_PATH", filepath.Join(t.TempDir(), "dogs.db"))
	t.Setenv("DOGS_LOG_LEVEL", "error")
	t.Setenv("DOGS_KAFKA_BROKERS", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "dogs %v", args)
	return out
}

func decodeDog(t *testing.T, out string) application.DogDTO {
	t.Helper()
	var dog application.DogDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dog))
	return dog
}

func TestCLI_BuddyScenario(t *testing.T) {
	useTempStore(t)

	assert.Contains(t, mustRun(t, "create-table"), "dogs table ready")

	created := decodeDog(t, mustRun(t, "create", "Buddy", "Golden Retriever", "--json"))
	assert.NotZero(t, created.ID)

	var all []application.DogDTO
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "list", "--json")), &all))
	assert.Equal(t, []application.DogDTO{created}, all)

	mustRun(t, "update", "1", "--breed", "Lab")

	found := decodeDog(t, mustRun(t, "find", "--id", "1", "--json"))
	assert.Equal(t, "Buddy", found.Name)
	assert.Equal(t, "Lab", found.Breed)
}

func TestCLI_TextOutput(t *testing.T) {
	useTempStore(t)
	mustRun(t, "create-table")
	mustRun(t, "create", "Rex", "German Shepherd")

	out := mustRun(t, "list")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "German Shepherd")
}

func TestCLI_FindOrCreateIsStable(t *testing.T) {
	useTempStore(t)
	mustRun(t, "create-table")

	first := decodeDog(t, mustRun(t, "find-or-create", "Rex", "German Shepherd", "--json"))
	second := decodeDog(t, mustRun(t, "find-or-create", "Rex", "German Shepherd", "--json"))
	assert.Equal(t, first.ID, second.ID)
}

func TestCLI_FindMissing(t *testing.T) {
	useTempStore(t)
	mustRun(t, "create-table")

	_, err := run(t, "find", "--name", "nonexistent")
	assert.True(t, domain.IsNotFound(err))
}

func TestCLI_DropTable(t *testing.T) {
	useTempStore(t)
	mustRun(t, "create-table")
	mustRun(t, "create", "Rex", "German Shepherd")

	assert.Contains(t, mustRun(t, "drop-table"), "dogs table dropped")
	mustRun(t, "create-table")
	assert.Equal(t, "[]\n", mustRun(t, "list", "--json"))
}

func TestCLI_ArgumentErrors(t *testing.T) {
	useTempStore(t)

	tests := []struct {
		name string
		args []string
	}{
		{"find needs a key", []string{"find"}},
		{"find takes one key", []string{"find", "--name", "Rex", "--id", "1"}},
		{"update needs fields", []string{"update", "1"}},
		{"update needs numeric id", []string{"update", "one", "--name", "Rex"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestCLI_WatchRequiresBrokers(t *testing.T) {
	useTempStore(t)

	_, err := run(t, "watch")
	assert.ErrorContains(t, err, "no kafka brokers configured")
}
