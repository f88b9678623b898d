package serializer

// SliceRequest is the payload posted to the provisioning endpoint.
type SliceRequest struct {
	Name        string            `json:"name" yaml:"name" validate:"required,max=64"`
	Topologies  []TopologyRequest `json:"topologies" yaml:"topologies" validate:"required,min=1,max=3,dive"`
	Connections []Connection      `json:"connections" yaml:"connections" validate:"dive"`
}

// TopologyRequest describes one topology of a slice.
type TopologyRequest struct {
	Name string      `json:"name" yaml:"name" validate:"required"`
	Kind string      `json:"kind" yaml:"kind" validate:"required,oneof=ring star mesh tree"`
	VMs  []VMRequest `json:"vms" yaml:"vms" validate:"required,min=1,dive"`
}

// VMRequest describes one virtual machine.
type VMRequest struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Flavor   string `json:"flavor" yaml:"flavor" validate:"required,oneof=f1 f2 f3 f4 f5 f6"`
	Internet bool   `json:"internet" yaml:"internet"`
}

// Connection is a link between two VMs of different topologies, by name.
type Connection struct {
	From string `json:"from" yaml:"from" validate:"required"`
	To   string `json:"to" yaml:"to" validate:"required"`
}
