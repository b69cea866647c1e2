package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"github.com/bytedance/sonic"
)

// FileParam is the reserved parameter name for the binary part of an upload
const FileParam = "file"

// FilePart is a pre-built binary multipart field. Put it in the parameter
// map of a multipart/form-data call.
type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// encodedBody is a request body together with its outgoing content type
type encodedBody struct {
	data        []byte
	contentType string
}

// queryValues flattens params into a query string. Sequences become
// repeated "key[]" entries and nil values are dropped.
func queryValues(params map[string]any) url.Values {
	values := url.Values{}
	for _, key := range sortedKeys(params) {
		value := params[key]
		if value == nil {
			continue
		}
		if items, ok := sequence(value); ok {
			for _, item := range items {
				values.Add(key+"[]", stringify(item))
			}
			continue
		}
		values.Add(key, stringify(value))
	}
	return values
}

// jsonBody serializes the parameter map as one JSON document. Nil values
// are omitted.
func jsonBody(params map[string]any) (*encodedBody, error) {
	doc := make(map[string]any, len(params))
	for key, value := range params {
		if value != nil {
			doc[key] = value
		}
	}
	data, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode json body: %w", err)
	}
	return &encodedBody{data: data, contentType: mimeJSON}, nil
}

// multipartBody builds a form body. Keys are written in sorted order and
// sequence items keep their order as key[0], key[1], ...
func multipartBody(params map[string]any) (*encodedBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(params) {
		value := params[key]

		part, isFile := filePart(value)
		if key == FileParam && !isFile {
			return nil, ErrInvalidFileParam
		}
		if isFile {
			if err := writeFilePart(w, key, part); err != nil {
				return nil, err
			}
			continue
		}
		if value == nil {
			continue
		}

		if items, ok := sequence(value); ok {
			for i, item := range items {
				if err := w.WriteField(fmt.Sprintf("%s[%d]", key, i), stringify(item)); err != nil {
					return nil, fmt.Errorf("write field %s: %w", key, err)
				}
			}
			continue
		}
		if err := w.WriteField(key, stringify(value)); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	return &encodedBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, field string, part *FilePart) error {
	contentType := part.ContentType
	if contentType == "" {
		contentType = mimeBinary
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(part.Filename)))
	h.Set("Content-Type", contentType)

	pw, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := pw.Write(part.Data); err != nil {
		return fmt.Errorf("write file part: %w", err)
	}
	return nil
}

func filePart(value any) (*FilePart, bool) {
	switch v := value.(type) {
	case FilePart:
		return &v, true
	case *FilePart:
		return v, v != nil
	default:
		return nil, false
	}
}

// sequence reports whether value is an ordered collection and returns its
// items. Byte slices are treated as scalars.
func sequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	case []byte:
		return nil, false
	case types.Value:
		arr, ok := v.AsArray()
		if !ok {
			return nil, false
		}
		items := make([]any, len(arr))
		for i, item := range arr {
			items[i] = item
		}
		return items, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// stringify renders a scalar as a form or query value. Maps and structs are
// sent as JSON text.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case types.Value:
		return v.Text()
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Struct, reflect.Ptr:
		if data, err := sonic.Marshal(value); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(value)
}

func sortedKeys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
