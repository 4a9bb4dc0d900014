package store

import "github.com/phillip-england/recruitdesk/internal/records"

// LoadDefaults replaces every collection with the built-in demo data.
func (s *Store) LoadDefaults() {
	s.SetCandidates(DefaultCandidates())
	s.SetClients(DefaultClients())
	s.SetJobs(DefaultJobs())
	s.SetCallLogs(DefaultCallLogs())
}

func DefaultCandidates() []records.Candidate {
	return []records.Candidate{
		{ID: 1, Name: "Ronak Shah", Email: "ronak@intglobal.com", Phone: "+18123277308", Client: "Aurora 64", JobTitle: "FedEx Delivery Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 08:32 AM CDT"},
		{ID: 2, Name: "Test", Email: records.Placeholder, Phone: "+916290512352", Client: "Aurora 64", JobTitle: "FedEx Delivery Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 03:05 AM ADT"},
		{ID: 3, Name: "Santosh Singh", Email: "tarak@intglobal.com", Phone: "+916290512352", Client: "Aurora 64", JobTitle: "FedEx Delivery Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 02:21 AM CDT"},
		{ID: 4, Name: "Paloma", Email: records.Placeholder, Phone: "+916289715423", Client: "Tsavo West Inc", JobTitle: "Weekend L20 Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 03:05 AM ADT"},
		{ID: 5, Name: "Mukesh Singh", Email: "mukesh@yopmail.com", Phone: "+916290512352", Client: "Aurora 64", JobTitle: "FedEx Delivery Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 01:59 AM CDT"},
		{ID: 6, Name: "Jayden", Email: records.Placeholder, Phone: "+918777315232", Client: "Aurora 64", JobTitle: "FedEx Delivery Driver", Vendor: "Tapai Ghosh", CreatedAt: "13th Jan 2026 at 01:40 AM CDT"},
	}
}

func DefaultClients() []records.Client {
	return []records.Client{
		{ID: 40, Name: "Jab Express, INC (Watertown)", Contact: "Ancile Services", Company: "Jab Express, INC", Category: "FedEx P&D Full Service", Date: "08/01/2026 08:47:23", Timezone: "Eastern Daylight"},
		{ID: 45, Name: "Aurora 64", Contact: "Ancile Services", Company: "Aurora 64", Category: "FedEx P&D Full Service", Date: "08/01/2026 08:47:23", Timezone: "Central Daylight"},
		{ID: 5, Name: "MikNik Inc", Contact: "Ancile Services", Company: "MikNik Inc.", Category: "FedEx P&D Full Service", Date: "08/01/2026 08:47:23", Timezone: "Mountain Standard"},
		{ID: 31, Name: "Piper Haulier, Inc.", Contact: "Ancile Services", Company: "Piper Haulier, Inc.", Category: "FedEx P&D FADV Processing", Date: "08/01/2026 08:47:23", Timezone: "America/Phoenix"},
		{ID: 11, Name: "KSJ & DAWKINS INC", Contact: "Ancile Services", Company: "KSJ & DAWKINS INC", Category: "FedEx P&D Full Service", Date: "08/01/2026 08:47:23", Timezone: "Eastern Daylight"},
	}
}

func DefaultJobs() []records.Job {
	return []records.Job{
		{ID: 9, Title: "AVP", Category: "King Courier Hiring", Posted: "18/09/2025 14:09:43", Status: records.JobInactive},
		{ID: 13, Title: "Veteran Fedex Driver", Category: "FedEx P&D FADV Processing", Posted: "18/09/2025 14:09:56", Status: records.JobInactive},
		{ID: 5, Title: "AVP", Category: "FedEx P&D FADV Processing", Posted: "18/09/2025 14:09:23", Status: records.JobInactive},
		{ID: 27, Title: "Bulk Truck (L20)", Category: "FedEx P&D Full Service", Posted: "08/08/2025 17:55:03", Status: records.JobActive},
		{ID: 1, Title: "CDL Team Run", Category: "Fedex CDL Hiring", Posted: "08/08/2025 17:46:51", Status: records.JobActive},
		{ID: 37, Title: "Lead Driver", Category: "FedEx P&D Full Service", Posted: "18/09/2025 14:13:12", Status: records.JobActive},
	}
}

func DefaultCallLogs() []records.CallLog {
	return []records.CallLog{
		{ID: 1, Candidate: "Ronak Shah", Phone: "+18123277308", Type: records.CallOutgoing, Duration: "5:32", Status: records.CallCompleted, Date: "13th Jan 2026 at 09:15 AM CDT", Notes: "Discussed availability"},
		{ID: 2, Candidate: "Santosh Singh", Phone: "+916290512352", Type: records.CallIncoming, Duration: "3:45", Status: records.CallCompleted, Date: "13th Jan 2026 at 08:30 AM CDT", Notes: "Follow-up on application"},
		{ID: 3, Candidate: "Paloma", Phone: "+916289715423", Type: records.CallMissed, Duration: records.Placeholder, Status: records.CallStatusMiss, Date: "13th Jan 2026 at 08:00 AM CDT", Notes: "Callback scheduled"},
		{ID: 4, Candidate: "Mukesh Singh", Phone: "+916290512352", Type: records.CallOutgoing, Duration: "8:12", Status: records.CallCompleted, Date: "12th Jan 2026 at 04:45 PM CDT", Notes: "Initial screening"},
		{ID: 5, Candidate: "Jayden", Phone: "+918777315232", Type: records.CallOutgoing, Duration: "2:18", Status: records.CallCompleted, Date: "12th Jan 2026 at 03:20 PM CDT", Notes: "Quick verification"},
		{ID: 6, Candidate: "Test", Phone: "+916290512352", Type: records.CallMissed, Duration: records.Placeholder, Status: records.CallStatusMiss, Date: "12th Jan 2026 at 02:00 PM CDT", Notes: "No answer"},
	}
}
