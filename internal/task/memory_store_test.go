package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTaskStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		store := NewMemoryTaskStore()
		task := NewTask("https://example.com")

		require.NoError(t, store.SaveTask(ctx, task))
		got, err := store.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)

		err = store.SaveTask(ctx, task)
		assert.ErrorIs(t, err, ErrTaskExists)
	})

	t.Run("unknown task", func(t *testing.T) {
		store := NewMemoryTaskStore()

		_, err := store.GetTask(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrTaskNotFound)

		_, err = store.UpdateTask(ctx, uuid.New(), func(*Task) {})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("update returns a copy", func(t *testing.T) {
		store := NewMemoryTaskStore()
		task := NewTask("https://example.com")
		require.NoError(t, store.SaveTask(ctx, task))

		updated, err := store.UpdateTask(ctx, task.ID, func(stored *Task) {
			stored.Status = TaskStatusProcessing
			stored.ID = uuid.New() // IDs are immutable
		})
		require.NoError(t, err)
		assert.Equal(t, task.ID, updated.ID)
		assert.Equal(t, TaskStatusProcessing, updated.Status)

		updated.Status = TaskStatusFailed
		got, err := store.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, TaskStatusProcessing, got.Status)
	})

	t.Run("list in submission order with filter", func(t *testing.T) {
		store := NewMemoryTaskStore()
		var ids []uuid.UUID
		for i := 0; i < 4; i++ {
			task := NewTask("https://example.com")
			require.NoError(t, store.SaveTask(ctx, task))
			ids = append(ids, task.ID)
		}
		_, err := store.UpdateTask(ctx, ids[1], func(stored *Task) { stored.Status = TaskStatusCompleted })
		require.NoError(t, err)
		_, err = store.UpdateTask(ctx, ids[3], func(stored *Task) { stored.Status = TaskStatusCompleted })
		require.NoError(t, err)

		all, err := store.ListTasks(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, ids, taskIDs(all))

		completed, err := store.ListTasks(ctx, TaskStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[1], ids[3]}, taskIDs(completed))

		failed, err := store.ListTasks(ctx, TaskStatusFailed)
		require.NoError(t, err)
		assert.Empty(t, failed)

		assert.Equal(t, map[TaskStatus]int{
			TaskStatusPending:   2,
			TaskStatusCompleted: 2,
		}, store.CountByStatus())
	})
}

func TestTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{
		TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted,
		TaskStatusFailed, TaskStatusDiscarded,
	} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, TaskStatus("unknown").Valid())
	assert.False(t, TaskStatus("").Valid())

	assert.False(t, TaskStatusPending.Terminal())
	assert.False(t, TaskStatusProcessing.Terminal())
	assert.True(t, TaskStatusCompleted.Terminal())
	assert.True(t, TaskStatusFailed.Terminal())
	assert.True(t, TaskStatusDiscarded.Terminal())
}

func taskIDs(tasks []Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
