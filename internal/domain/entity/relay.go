package entity

import (
	"errors"
	"fmt"

	"github.com/LukaGiorgadze/gonull"

	"ikedadada/go-onionoo/internal/domain/value_object"
)

// RelayParams は Relay の構築入力
type RelayParams struct {
	Measured           bool
	RecommendedVersion bool
	Running            bool

	AS          gonull.Nullable[string]
	ASName      gonull.Nullable[string]
	CityName    gonull.Nullable[string]
	Country     gonull.Nullable[string]
	CountryName gonull.Nullable[string]
	RegionName  gonull.Nullable[string]

	Platform          string
	Version           string
	Fingerprint       value_object.Fingerprint
	ExitPolicy        []string
	ExitPolicySummary map[string][]string
	Nickname          string
	Flags             []string
	ORAddresses       []string
}

// Relay is one entry of the relay directory. It is immutable after
// construction: accessors hand out copies of slices and maps.
type Relay struct {
	measured           bool
	recommendedVersion bool
	running            bool

	as          gonull.Nullable[string]
	asName      gonull.Nullable[string]
	cityName    gonull.Nullable[string]
	country     gonull.Nullable[string]
	countryName gonull.Nullable[string]
	regionName  gonull.Nullable[string]

	platform          string
	version           string
	fingerprint       value_object.Fingerprint
	exitPolicy        []string
	exitPolicySummary map[string][]string
	nickname          string
	flags             value_object.RelayFlags
	orAddresses       []string
}

var ErrMissingFingerprint = errors.New("relay fingerprint is required")

// コンストラクタ
func NewRelay(p RelayParams) (*Relay, error) {
	if p.Fingerprint.IsZero() {
		return nil, ErrMissingFingerprint
	}
	return &Relay{
		measured:           p.Measured,
		recommendedVersion: p.RecommendedVersion,
		running:            p.Running,
		as:                 p.AS,
		asName:             p.ASName,
		cityName:           p.CityName,
		country:            p.Country,
		countryName:        p.CountryName,
		regionName:         p.RegionName,
		platform:           p.Platform,
		version:            p.Version,
		fingerprint:        p.Fingerprint,
		exitPolicy:         cloneStrings(p.ExitPolicy),
		exitPolicySummary:  cloneSummary(p.ExitPolicySummary),
		nickname:           p.Nickname,
		flags:              value_object.NewRelayFlags(p.Flags),
		orAddresses:        cloneStrings(p.ORAddresses),
	}, nil
}

// ステータス
func (r *Relay) Measured() bool           { return r.measured }
func (r *Relay) RecommendedVersion() bool { return r.recommendedVersion }
func (r *Relay) Running() bool            { return r.running }

// AS / 位置情報。未設定は Valid == false
func (r *Relay) AS() gonull.Nullable[string]          { return r.as }
func (r *Relay) ASName() gonull.Nullable[string]      { return r.asName }
func (r *Relay) CityName() gonull.Nullable[string]    { return r.cityName }
func (r *Relay) Country() gonull.Nullable[string]     { return r.country }
func (r *Relay) CountryName() gonull.Nullable[string] { return r.countryName }
func (r *Relay) RegionName() gonull.Nullable[string]  { return r.regionName }

func (r *Relay) Platform() string                       { return r.platform }
func (r *Relay) Version() string                        { return r.version }
func (r *Relay) Fingerprint() value_object.Fingerprint  { return r.fingerprint }
func (r *Relay) Nickname() string                       { return r.nickname }
func (r *Relay) Flags() value_object.RelayFlags         { return r.flags }
func (r *Relay) ExitPolicy() []string                   { return cloneStrings(r.exitPolicy) }
func (r *Relay) ExitPolicySummary() map[string][]string { return cloneSummary(r.exitPolicySummary) }
func (r *Relay) ORAddresses() []string                  { return cloneStrings(r.orAddresses) }

func (r *Relay) HasFlag(f value_object.Flag) bool { return r.flags.Has(f) }

// IsEntry reports whether the relay carries the Guard flag.
func (r *Relay) IsEntry() bool { return r.flags.Has(value_object.FlagGuard) }

// IsExit reports whether the relay carries the Exit flag.
func (r *Relay) IsExit() bool { return r.flags.Has(value_object.FlagExit) }

// PrimaryORAddress returns the first OR address, e.g. "111.22.33.44:9001".
// ok is false when the relay publishes no address.
func (r *Relay) PrimaryORAddress() (addr string, ok bool) {
	if len(r.orAddresses) == 0 {
		return "", false
	}
	return r.orAddresses[0], true
}

// PrimaryEndpoint parses PrimaryORAddress into host and port.
func (r *Relay) PrimaryEndpoint() (value_object.ORAddress, error) {
	addr, ok := r.PrimaryORAddress()
	if !ok {
		return value_object.ORAddress{}, fmt.Errorf("relay %s has no or address", r.fingerprint)
	}
	return value_object.ParseORAddress(addr)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneSummary(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = cloneStrings(v)
	}
	return out
}
