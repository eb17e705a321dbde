// Package domain contains the entities of the MapleStory catalog, the
// community records layered on top of it (users, guilds, marketplace
// listings), and the lifecycle every one of them shares. It is independent
// of any specific infrastructure or delivery mechanism; the gorm tags on the
// entities describe persistence, not behavior.
package domain
