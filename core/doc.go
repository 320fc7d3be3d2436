// Package core defines the domain model, shared contracts, configuration,
// and scheme error classification for the Pix gateway. Leaf packages (codec,
// auth, transport) and the per-capability gateway packages depend on core;
// core depends on none of them.
package core
