package bitflag

// Flag represents a single bit flag
type Flag uint

// Container represents a set of bit flags
type Container uint

// EmptyContainer is a container with no flags set
const EmptyContainer Container = 0

// Has returns whether all given flags are set in the container
func (cur Container) Has(flags ...Flag) bool {
	for _, flag := range flags {
		if uint(cur)&uint(flag) != uint(flag) {
			return false
		}
	}
	return true
}

// With returns a copy of the container with the given flags added
func (cur Container) With(flags ...Flag) Container {
	for _, flag := range flags {
		cur = Container(uint(cur) | uint(flag))
	}
	return cur
}

// Without returns a copy of the container with the given flags removed
func (cur Container) Without(flags ...Flag) Container {
	for _, flag := range flags {
		cur = Container(uint(cur) &^ uint(flag))
	}
	return cur
}
