package recipebox

// Version is the recipebox release version, printed by "pantry version".
const Version = "0.1.0"
