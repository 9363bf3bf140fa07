package profile

import validation "github.com/go-ozzo/ozzo-validation/v4"

type CreateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Specialty string `json:"specialty"`
	IsArtist  bool   `json:"is_artist"`
}

func (r CreateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 60)),
		validation.Field(&r.LastName, validation.Length(0, 60)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
		validation.Field(&r.Specialty, validation.Length(0, 120)),
	)
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Specialty *string `json:"specialty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(1, 60)),
		validation.Field(&r.LastName, validation.Length(0, 60)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
		validation.Field(&r.Specialty, validation.Length(0, 120)),
	)
}
