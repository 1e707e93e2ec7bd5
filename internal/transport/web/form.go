package web

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/kailas-cloud/moviesearch/internal/usecase/dispatch"
)

// maxFormMemory caps multipart form parsing.
const maxFormMemory = 1 << 20

// Form field names.
const (
	fieldQuery     = "query"
	fieldIndexType = "index_type"
)

// parseSearchForm reads query and index_type from a urlencoded or multipart body.
// A field missing from the body stays nil; a present but empty field is "".
func parseSearchForm(r *http.Request) (dispatch.Form, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return dispatch.Form{}, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return dispatch.Form{}, fmt.Errorf("parse form: %w", err)
	}

	return dispatch.Form{
		Query:     postValue(r, fieldQuery),
		IndexType: postValue(r, fieldIndexType),
	}, nil
}

func postValue(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
