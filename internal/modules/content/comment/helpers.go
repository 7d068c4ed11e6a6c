package comment

import (
	"strings"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseCommentID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID(msgInvalidID)
	}
	return oid, nil
}

func normalizeAuthor(author *models.CommentAuthor) models.CommentAuthor {
	if author == nil {
		return models.CommentAuthor{Name: models.AnonymousAuthorName}
	}
	out := *author
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		out.Name = models.AnonymousAuthorName
	}
	out.Email = strings.TrimSpace(out.Email)
	return out
}

func normalizeStatus(raw models.CommentStatus) (models.CommentStatus, bool) {
	s := models.CommentStatus(strings.ToLower(strings.TrimSpace(string(raw))))
	if s == "" {
		return models.CommentPending, true
	}
	return s, s.Valid()
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
