package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewMemoRepository(t *testing.T) {
	db := &Connection{}
	repo := NewMemoRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewTransformRepository(t *testing.T) {
	db := &Connection{}
	repo := NewTransformRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
