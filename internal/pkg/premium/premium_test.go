package premium

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell/app/models"
)

func TestCanReadFreePost(t *testing.T) {
	post := &models.BlogPost{AuthorID: 1, Type: models.POST_TYPE_FREE}

	assert.True(t, CanReadPost(post, 0))
	assert.True(t, CanReadPost(post, 1))
	assert.True(t, CanReadPost(post, 99))
}

func TestAuthorCanReadOwnPaidPost(t *testing.T) {
	post := &models.BlogPost{AuthorID: 7, Type: models.POST_TYPE_PAID}

	assert.True(t, CanReadPost(post, 7))
}

func TestAnonymousCannotReadPaidPost(t *testing.T) {
	post := &models.BlogPost{AuthorID: 7, Type: models.POST_TYPE_PAID}

	assert.False(t, CanReadPost(post, 0))
}

func TestHasActiveAccessAnonymous(t *testing.T) {
	assert.False(t, HasActiveAccess(0))
}
