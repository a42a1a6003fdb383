// File: internal/review/model_test.go
package review

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewRequest_CommentBoundedAt500(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	req := CreateReviewRequest{
		BookingID: uuid.New(),
		Rating:    4,
		Comment:   strings.Repeat("a", 500),
	}
	require.NoError(t, v.Struct(req))

	req.Comment = strings.Repeat("a", 501)
	assert.Error(t, v.Struct(req))
}
