package repository

import (
	"fmt"

	"github.com/LukaGiorgadze/gonull"

	"ikedadada/go-onionoo/internal/domain/entity"
	vo "ikedadada/go-onionoo/internal/domain/value_object"
	"ikedadada/go-onionoo/internal/infrastructure/util"
)

// detailsDocument is the Onionoo details response. Required fields are
// pointers so that a missing key can be told apart from a zero value.
type detailsDocument struct {
	Relays *[]relayDTO `json:"relays"`
}

type relayDTO struct {
	Measured           *bool `json:"measured"`
	RecommendedVersion *bool `json:"recommended_version"`
	Running            *bool `json:"running"`

	AS          gonull.Nullable[string] `json:"as"`
	ASName      gonull.Nullable[string] `json:"as_name"`
	CityName    gonull.Nullable[string] `json:"city_name"`
	Country     gonull.Nullable[string] `json:"country"`
	CountryName gonull.Nullable[string] `json:"country_name"`
	RegionName  gonull.Nullable[string] `json:"region_name"`

	Platform          *string              `json:"platform"`
	Version           *string              `json:"version"`
	Fingerprint       *string              `json:"fingerprint"`
	ExitPolicy        *[]string            `json:"exit_policy"`
	ExitPolicySummary *map[string][]string `json:"exit_policy_summary"`
	Nickname          *string              `json:"nickname"`
	Flags             *[]string            `json:"flags"`
	ORAddresses       *[]string            `json:"or_addresses"`
}

func (d detailsDocument) toDirectory() (entity.Directory, error) {
	if err := util.ValidatePresent(d.Relays, "relays"); err != nil {
		return entity.Directory{}, err
	}
	relays := make([]*entity.Relay, 0, len(*d.Relays))
	seen := make(map[string]string, len(*d.Relays))
	for i, dto := range *d.Relays {
		path := fmt.Sprintf("relays[%d]", i)
		r, err := dto.toEntity(path)
		if err != nil {
			return entity.Directory{}, err
		}
		if err := util.ValidateUnique(seen, r.Fingerprint().String(), path+".fingerprint"); err != nil {
			return entity.Directory{}, err
		}
		relays = append(relays, r)
	}
	return entity.NewDirectory(relays), nil
}

func (dto relayDTO) toEntity(path string) (*entity.Relay, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"measured", dto.Measured != nil},
		{"recommended_version", dto.RecommendedVersion != nil},
		{"running", dto.Running != nil},
		{"platform", dto.Platform != nil},
		{"version", dto.Version != nil},
		{"fingerprint", dto.Fingerprint != nil},
		{"exit_policy", dto.ExitPolicy != nil},
		{"exit_policy_summary", dto.ExitPolicySummary != nil},
		{"nickname", dto.Nickname != nil},
		{"flags", dto.Flags != nil},
		{"or_addresses", dto.ORAddresses != nil},
	}
	for _, f := range required {
		if !f.present {
			return nil, util.ValidationError{Field: path + "." + f.name, Message: "is required"}
		}
	}

	if err := util.ValidateRequired(*dto.Fingerprint, path+".fingerprint"); err != nil {
		return nil, err
	}
	fp, err := vo.NewFingerprint(*dto.Fingerprint)
	if err != nil {
		return nil, util.ValidationError{Field: path + ".fingerprint", Message: err.Error()}
	}

	return entity.NewRelay(entity.RelayParams{
		Measured:           *dto.Measured,
		RecommendedVersion: *dto.RecommendedVersion,
		Running:            *dto.Running,
		AS:                 dto.AS,
		ASName:             dto.ASName,
		CityName:           dto.CityName,
		Country:            dto.Country,
		CountryName:        dto.CountryName,
		RegionName:         dto.RegionName,
		Platform:           *dto.Platform,
		Version:            *dto.Version,
		Fingerprint:        fp,
		ExitPolicy:         *dto.ExitPolicy,
		ExitPolicySummary:  *dto.ExitPolicySummary,
		Nickname:           *dto.Nickname,
		Flags:              *dto.Flags,
		ORAddresses:        *dto.ORAddresses,
	})
}
