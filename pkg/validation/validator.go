package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Request limits for the HTTP surface
	MaxNameLength     = 64
	MaxVMsPerTopology = 64
)

func init() {
	validate = validator.New()
}

// AddTopologyRequest asks for a new topology in a session. An empty name is
// replaced by the default topology name.
type AddTopologyRequest struct {
	Name string `json:"name" validate:"omitempty,max=64"`
	Kind string `json:"kind" validate:"required,max=16"`
	VMs  int    `json:"vms" validate:"required,min=1,max=64"`
}

// UpdateNodeRequest edits one VM. Absent fields are left unchanged.
type UpdateNodeRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Flavor   *string `json:"flavor,omitempty" validate:"omitempty,oneof=f1 f2 f3 f4 f5 f6"`
	Internet *bool   `json:"internet,omitempty"`
}

// ConnectRequest links two VMs of different topologies. Pointers are used
// because node id 0 is valid.
type ConnectRequest struct {
	From *uint64 `json:"from" validate:"required"`
	To   *uint64 `json:"to" validate:"required"`
}

// SubmitRequest names the slice being submitted.
type SubmitRequest struct {
	Name string `json:"name" validate:"max=64"`
}

// Struct validates any tagged struct and returns the first failure in a
// readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAddTopologyRequest validates a topology creation request
func ValidateAddTopologyRequest(req *AddTopologyRequest) error {
	if req == nil {
		return errors.New("topology request cannot be nil")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Kind = strings.TrimSpace(req.Kind)
	return Struct(req)
}

// ValidateUpdateNodeRequest validates a node edit. At least one field must be set.
func ValidateUpdateNodeRequest(req *UpdateNodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}
	if req.Name == nil && req.Flavor == nil && req.Internet == nil {
		return errors.New("request: at least one of name, flavor or internet is required")
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	return Struct(req)
}

// ValidateConnectRequest validates a connection request
func ValidateConnectRequest(req *ConnectRequest) error {
	if req == nil {
		return errors.New("connect request cannot be nil")
	}
	return Struct(req)
}

// ValidateSubmitRequest validates a submission request. A blank name is left
// for the serializer to reject.
func ValidateSubmitRequest(req *SubmitRequest) error {
	if req == nil {
		return errors.New("submit request cannot be nil")
	}
	return Struct(req)
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
