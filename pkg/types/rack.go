package types

// SystemType distinguishes the two PLC backplane topologies this module
// supports.
type SystemType string

const (
	// SystemClassicSerial is the "LK" series: one DP master per rack in
	// slot 1, slot 0 unused, rack count driven by backplane instances.
	SystemClassicSerial SystemType = "classic-serial"

	// SystemCPUCentric is the "LE" series: exactly one rack, the CPU
	// occupies slot 0, user-configurable slots start at slot 1.
	SystemCPUCentric SystemType = "cpu-centric"
)

// Module is one installed IO module instance.
type Module struct {
	ID            string
	Model         string // catalogue key
	Kind          Kind
	TotalChannels int

	// SubChannels partitions TotalChannels by kind for mixed modules
	// (AI/AO, DI/DO) and for a CPU carrying onboard IO. Empty for
	// single-kind modules.
	SubChannels map[Kind]int

	RackID int
	SlotID int // 0-based internal slot index, see ChannelAddress
}

// Assignable reports whether this module exposes channels the Assigner may
// draw from. COM, DP, a CPU with no onboard IO, and rack-backplane modules
// are present but not assignable.
func (m Module) Assignable() bool {
	switch m.Kind {
	case KindCOM, KindDP, KindBackplane:
		return false
	case KindCPU:
		return len(m.SubChannels) > 0
	default:
		return true
	}
}

// ChannelsOfKind returns how many channels of kind k this module exposes.
func (m Module) ChannelsOfKind(k Kind) int {
	if len(m.SubChannels) > 0 {
		return m.SubChannels[k]
	}
	if m.Kind == k {
		return m.TotalChannels
	}
	return 0
}

// Rack is a frame of ordered slots.
type Rack struct {
	RackID     int // 1-based
	TotalSlots int
	SystemType SystemType
	Modules    []Module // occupancy, ordered by SlotID
}

// SystemConfiguration is the top-level hardware model: an ordered list of
// racks plus the chosen system type.
type SystemConfiguration struct {
	SystemType SystemType
	Racks      []Rack
}

// ModuleDefinition describes one entry of the persisted module catalogue,
// as resolved through internal/interfaces.CatalogueStore.
type ModuleDefinition struct {
	Model         string
	Kind          Kind
	TotalChannels int

	// SubChannels partitions TotalChannels by kind, populated only for a
	// CPU's onboard-IO sub-block (e.g. {AI: 4, DI: 8}). Empty otherwise.
	SubChannels  map[Kind]int
	IsMaster     bool
	SlotRequired bool
}
