package testutil

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

func (s *FakeServer) getMessage(c *gin.Context) {
	s.mu.Lock()
	doc, ok := s.messages[c.Param("messageId")]
	s.mu.Unlock()

	if !ok {
		abort(c, http.StatusNotFound, "message_not_found", "Message with the requested ID could not be found.")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *FakeServer) listMessages(c *gin.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.messages))
	for msgID := range s.messages {
		ids = append(ids, msgID)
	}
	sort.Strings(ids)
	docs := make([]gin.H, 0, len(ids))
	for _, msgID := range ids {
		docs = append(docs, s.messages[msgID])
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"total": len(docs), "messages": docs})
}
