package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/store"
	"github.com/MKhiriev/campus-archive/internal/validators"
)

type ClientServices struct {
	AuthService    ClientAuthService
	ProjectService ClientProjectService
	CourseService  ClientCourseService
	FileService    ClientFileService
	SearchService  ClientSearchService
	AccessService  ClientAccessService
}

func NewClientServices(transport adapter.Transport, session store.SessionStore, cipher crypto.FieldCipher, sensitiveFields []string, log *logger.Logger) *ClientServices {
	if log == nil {
		log = logger.Nop()
	}
	if len(sensitiveFields) == 0 {
		sensitiveFields = crypto.DefaultSensitiveFields
	}
	validator := validators.NewArchiveValidator()

	return &ClientServices{
		AuthService:    NewClientAuthService(transport, session, cipher, sensitiveFields, validator, log),
		ProjectService: NewClientProjectService(transport, validator),
		CourseService:  NewClientCourseService(transport, validator),
		FileService:    NewClientFileService(transport, validator),
		SearchService:  NewClientSearchService(transport),
		AccessService:  NewClientAccessService(transport, validator),
	}
}

// decode unwraps a transport result into T.
func decode[T any](op string, resp *adapter.Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	if err = resp.Decode(&out); err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// decodeDecrypted is decode for records that may carry encrypted
// sensitive fields. Fields that fail to decrypt keep their raw value.
func decodeDecrypted[T any](op string, cipher crypto.FieldCipher, fields []string, resp *adapter.Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	var obj map[string]any
	if err = dec.Decode(&obj); err != nil {
		return out, fmt.Errorf("%s: decode response: %w", op, err)
	}

	raw, err := json.Marshal(cipher.DecryptFields(obj, fields))
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
