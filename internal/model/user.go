package model

// User represents a person who can log into the platform by selecting a
// profile.  Users are records of the "users" collection in the snapshot;
// the JSON tags match the snapshot field names.  FactoryID and AgentID are
// optional links that scope factory staff and agents to their businesses.
//
// Fields:
//  ID        – unique record identifier within the users collection.
//  Name      – display name shown in the profile picker.
//  Email     – contact address; not used for authentication.
//  Role      – one of the closed Role set; immutable after creation.
//  FactoryID – factory the user belongs to (empty for platform admins and customers).
//  AgentID   – agent record backing this user when Role is Agent.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FactoryID string `json:"factoryId,omitempty"`
	AgentID   string `json:"agentId,omitempty"`
}
