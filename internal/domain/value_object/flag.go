package value_object

// Flag は directory authority が relay に付与するフラグ
type Flag string

const (
	FlagAuthority  Flag = "Authority"
	FlagBadExit    Flag = "BadExit"
	FlagExit       Flag = "Exit"
	FlagFast       Flag = "Fast"
	FlagGuard      Flag = "Guard"
	FlagHSDir      Flag = "HSDir"
	FlagMiddleOnly Flag = "MiddleOnly"
	FlagRunning    Flag = "Running"
	FlagStable     Flag = "Stable"
	FlagStaleDesc  Flag = "StaleDesc"
	FlagV2Dir      Flag = "V2Dir"
	FlagValid      Flag = "Valid"
)

func (f Flag) String() string { return string(f) }

// RelayFlags is a set of flags. Membership is an exact, case-sensitive
// string match; List keeps the first-seen order of the source list.
type RelayFlags struct {
	list []Flag
	set  map[Flag]struct{}
}

func NewRelayFlags(raw []string) RelayFlags {
	f := RelayFlags{
		list: make([]Flag, 0, len(raw)),
		set:  make(map[Flag]struct{}, len(raw)),
	}
	for _, s := range raw {
		fl := Flag(s)
		if _, dup := f.set[fl]; dup {
			continue
		}
		f.set[fl] = struct{}{}
		f.list = append(f.list, fl)
	}
	return f
}

func (f RelayFlags) Has(fl Flag) bool {
	_, ok := f.set[fl]
	return ok
}

func (f RelayFlags) Len() int { return len(f.list) }

func (f RelayFlags) List() []Flag {
	out := make([]Flag, len(f.list))
	copy(out, f.list)
	return out
}

func (f RelayFlags) Strings() []string {
	out := make([]string, len(f.list))
	for i, fl := range f.list {
		out[i] = string(fl)
	}
	return out
}
