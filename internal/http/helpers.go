package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID extracts the numeric :id route parameter. On a malformed value it
// writes a 400 response and reports false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return 0, false
	}
	return uint(id), true
}

// readCoverFile reads the optional multipart "cover" upload fully into
// memory. A missing file field or an empty file input is not an error; both
// report nil bytes, which storage treats as "keep the existing cover".
func readCoverFile(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Filename == "" || fileHeader.Size == 0 {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}
