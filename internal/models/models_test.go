package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTodoJSONSchema(t *testing.T) {
	data, err := json.Marshal(Todo{ID: 1, Title: "Buy milk"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"title":"Buy milk","completed":false}`, string(data))
}

func TestErrorResponseJSON(t *testing.T) {
	t.Run("omits empty code and details", func(t *testing.T) {
		data, err := json.Marshal(ErrorResponse{Detail: "Todo not found"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"detail":"Todo not found"}`, string(data))
	})

	t.Run("includes code when set", func(t *testing.T) {
		data, err := json.Marshal(ErrorResponse{Detail: "Todo not found", Code: "TODO_NOT_FOUND"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"detail":"Todo not found","code":"TODO_NOT_FOUND"}`, string(data))
	})
}

func TestUpdateTodoRequestDistinguishesMissingCompleted(t *testing.T) {
	var missing UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Nil(t, missing.Completed)

	var explicitFalse UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"completed":false}`), &explicitFalse))
	require.NotNil(t, explicitFalse.Completed)
	assert.False(t, *explicitFalse.Completed)
}

func TestTodoSchemaMigration(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, db.AutoMigrate(&Todo{}, &Sequence{}))

	t.Run("keeps the caller-assigned id", func(t *testing.T) {
		todo := &Todo{ID: 42, Title: "Answer"}
		require.NoError(t, db.Create(todo).Error)

		var fetched Todo
		require.NoError(t, db.First(&fetched, "id = ?", 42).Error)
		assert.Equal(t, int64(42), fetched.ID)
		assert.Equal(t, "Answer", fetched.Title)
		assert.False(t, fetched.Completed)
	})

	t.Run("stores sequences by name", func(t *testing.T) {
		require.NoError(t, db.Create(&Sequence{Name: "todos", NextID: 7}).Error)

		var seq Sequence
		require.NoError(t, db.First(&seq, "name = ?", "todos").Error)
		assert.Equal(t, int64(7), seq.NextID)
	})
}
