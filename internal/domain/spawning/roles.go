package spawning

// Worker roles known to the allocator
const (
	RoleSourceHarvester    = "sourceHarvester"
	RoleHauler             = "hauler"
	RoleRemoteHarvester    = "remoteSourceHarvester"
	RoleRemoteHauler       = "remoteHauler"
	RoleRemoteReserver     = "remoteReserver"
	RoleRemoteDismantler   = "remoteDismantler"
	RoleRemoteCoreAttacker = "remoteCoreAttacker"
)
