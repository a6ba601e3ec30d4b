package taxonomy

// DefaultConcepts returns the built-in concept rows.
//
// security_testing is the broadened row for penetration-testing and
// vulnerability questions. Its priority places it ahead of every other row,
// and the narrower penetration_testing vocabulary is tried after it.
func DefaultConcepts() []Concept {
	return []Concept{
		{
			Name:     "security_testing",
			Priority: 10,
			Broadens: "penetration_testing",
			Triggers: []string{"penetration test", "pen test", "pentest", "vulnerability", "vulnerabilities", "security testing", "ethical hack", "red team"},
			Keywords: []string{
				"vulnerability", "vulnerabilities", "vuln", "scan", "security assessment",
				"security testing", "red team", "bug bounty", "dast", "sast", "cve", "exploit",
				"findings", "remediat", "nessus", "qualys", "burp", "owasp",
			},
		},
		{
			Name:     "penetration_testing",
			Triggers: []string{"penetration test", "pen test", "pentest"},
			Keywords: []string{"penetration", "pentest", "pen test", "ethical hack", "crest", "attack simulation"},
		},
		{
			Name:     "encryption",
			Triggers: []string{"encrypt", "cryptograph", "tls", "ssl", "at rest", "in transit"},
			Keywords: []string{"encrypt", "aes", "tls", "ssl", "cipher", "cryptograph", "key management", "kms", "hsm", "at rest", "in transit", "https"},
		},
		{
			Name:     "access_control",
			Triggers: []string{"access control", "authentication", "mfa", "multi-factor", "two-factor", "2fa", "least privilege", "single sign-on", "sso", "password"},
			Keywords: []string{"access control", "mfa", "multi-factor", "two-factor", "2fa", "authenticat", "sso", "single sign-on", "rbac", "role-based", "least privilege", "privileged", "password", "identity"},
		},
		{
			Name:     "incident_response",
			Triggers: []string{"incident", "breach"},
			Keywords: []string{"incident", "breach", "notification", "escalation", "forensic", "playbook", "runbook", "containment"},
		},
		{
			Name:     "business_continuity",
			Triggers: []string{"business continuity", "disaster recovery", "backup", "resilien", "bcp", "rto", "rpo"},
			Keywords: []string{"continuity", "disaster recovery", "backup", "restore", "failover", "redundan", "rto", "rpo", "resilien", "replicat"},
		},
		{
			Name:     "compliance_certification",
			Triggers: []string{"soc 2", "soc2", "iso 27001", "certif", "audit", "complian", "pci", "hipaa"},
			Keywords: []string{"soc 2", "soc2", "iso 27001", "iso/iec 27001", "certif", "audit", "attestation", "complian", "pci", "hipaa", "type ii"},
		},
		{
			Name:     "data_privacy",
			Triggers: []string{"privacy", "personal data", "pii", "data protection", "retention", "gdpr"},
			Keywords: []string{"privacy", "personal data", "pii", "gdpr", "ccpa", "data protection", "retention", "deletion", "consent", "data processing"},
		},
		{
			Name:     "logging_monitoring",
			Triggers: []string{"logging", "monitoring", "siem", "audit log", "audit trail"},
			Keywords: []string{"logging", "logs", "monitor", "siem", "alert", "audit trail", "detection", "security operations center"},
		},
		{
			Name:     "vendor_management",
			Triggers: []string{"subprocessor", "sub-processor", "third party", "third-party", "fourth party", "fourth-party", "supplier"},
			Keywords: []string{"subprocessor", "sub-processor", "third party", "third-party", "fourth party", "supplier", "due diligence", "vendor risk"},
		},
		{
			Name:     "security_training",
			Triggers: []string{"training", "awareness", "phishing"},
			Keywords: []string{"training", "awareness", "phishing", "simulation", "onboarding"},
		},
		{
			Name:     "network_security",
			Triggers: []string{"firewall", "network", "segmentation", "intrusion"},
			Keywords: []string{"firewall", "segmentation", "intrusion", "ids", "ips", "waf", "vpn", "ddos", "network"},
		},
		{
			Name:     "cyber_insurance",
			Triggers: []string{"insurance"},
			Keywords: []string{"insurance", "insured", "coverage", "underwrit"},
		},
	}
}
