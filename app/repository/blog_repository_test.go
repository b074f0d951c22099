package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/app/models"
)

func TestRecordViewOwnPost(t *testing.T) {
	// The author short-circuit never touches storage
	repo := NewBlogRepository(nil)

	result, err := repo.RecordView(10, 5, 5)
	require.NoError(t, err)

	assert.False(t, result.Credited)
	assert.Equal(t, ViewReasonOwnPost, result.Reason)
}

func TestRecordViewCreditsReaderOnce(t *testing.T) {
	db := testDB(t)
	repo := NewBlogRepository(db)

	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")
	post := seedPost(t, db, author.ID)

	result, err := repo.RecordView(post.ID, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, result.Credited)
	assert.Empty(t, result.Reason)

	// The repeat hits the unique (post_id, user_id) index, not an error path
	result, err = repo.RecordView(post.ID, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, result.Credited)
	assert.Equal(t, ViewReasonAlreadyViewed, result.Reason)

	var got models.BlogPost
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, uint(1), got.ViewCount)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	assert.Equal(t, uint(1), gotAuthor.Credits)
}

func TestRecordViewRepeatedCallsCreditExactlyOnce(t *testing.T) {
	db := testDB(t)
	repo := NewBlogRepository(db)

	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")
	post := seedPost(t, db, author.ID)

	credited := 0
	for i := 0; i < 5; i++ {
		result, err := repo.RecordView(post.ID, reader.ID, author.ID)
		require.NoError(t, err)
		if result.Credited {
			credited++
		}
	}
	assert.Equal(t, 1, credited)

	var got models.BlogPost
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, uint(1), got.ViewCount)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	assert.Equal(t, uint(1), gotAuthor.Credits)
}

func TestRecordViewDistinctReadersEachCredit(t *testing.T) {
	db := testDB(t)
	repo := NewBlogRepository(db)

	author := seedUser(t, db, "author@example.com")
	first := seedUser(t, db, "first@example.com")
	second := seedUser(t, db, "second@example.com")
	post := seedPost(t, db, author.ID)

	for _, reader := range []*models.User{first, second} {
		result, err := repo.RecordView(post.ID, reader.ID, author.ID)
		require.NoError(t, err)
		assert.True(t, result.Credited)
	}

	var got models.BlogPost
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, uint(2), got.ViewCount)

	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	assert.Equal(t, uint(2), gotAuthor.Credits)
}

func TestRecordViewOneReaderAcrossPosts(t *testing.T) {
	db := testDB(t)
	repo := NewBlogRepository(db)

	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")
	one := seedPost(t, db, author.ID)
	two := seedPost(t, db, author.ID)

	for _, post := range []*models.BlogPost{one, two} {
		result, err := repo.RecordView(post.ID, reader.ID, author.ID)
		require.NoError(t, err)
		assert.True(t, result.Credited)
	}

	// The pair index scopes per post, so two posts mean two credits
	var gotAuthor models.User
	require.NoError(t, db.First(&gotAuthor, author.ID).Error)
	assert.Equal(t, uint(2), gotAuthor.Credits)
}
