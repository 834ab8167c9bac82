package erm_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/erm/pkg/erm"
)

// The Big Bank plc example from the C4 model.
var (
	BigBankPlc                   = erm.NewEntity("Big Bank plc")
	PersonalBankingCustomer      = erm.NewEntity("Personal Banking Customer")
	CustomerServiceStaff         = erm.NewEntity("Customer Service Staff")
	BackOfficeStaff              = erm.NewEntity("Back Office Staff")
	ATM                          = erm.NewEntity("ATM")
	InternetBankingSystem        = erm.NewEntity("Internet Banking System")
	MainframeBankingSystem       = erm.NewEntity("Mainframe Banking System")
	EmailSystem                  = erm.NewEntity("E-mail System")
	WebApplication               = erm.NewEntity("Web Application")
	MobileApp                    = erm.NewEntity("Mobile App")
	SinglePageApplication        = erm.NewEntity("Single-Page Application")
	APIApplication               = erm.NewEntity("API Application")
	Database                     = erm.NewEntity("Database")
	SignInController             = erm.NewEntity("Sign In Controller")
	ResetPasswordController      = erm.NewEntity("Reset Password Controller")
	AccountsSummaryController    = erm.NewEntity("Accounts Summary Controller")
	SecurityComponent            = erm.NewEntity("Security Component")
	EmailComponent               = erm.NewEntity("E-mail Component")
	MainframeBankingSystemFacade = erm.NewEntity("Mainframe Banking System Facade")
)

const (
	viewsBalances = "Views account balances, and makes payments using"
	jsonCalls     = "Makes API calls to [JSON/HTTPS]"
	xmlCalls      = "Makes API calls to [XML/HTTPS]"
	sqlAccess     = "Reads from and writes to [SQL/TCP]"
	sendsEmail    = "Sends e-mail using"
)

func bigBankModel() erm.Model {
	clients := []*erm.Entity{SinglePageApplication, MobileApp}

	return erm.Model{
		erm.Of(BigBankPlc,
			erm.Rel("<Software system of",
				erm.Of(PersonalBankingCustomer,
					erm.Rel("Asks questions to>", CustomerServiceStaff),
					erm.Rel("Withdraws cash using>", ATM),
					erm.Rel(viewsBalances+">", InternetBankingSystem),
				),
				erm.OfAll([]*erm.Entity{CustomerServiceStaff, BackOfficeStaff, ATM},
					erm.Rel("Uses>", MainframeBankingSystem),
				),
				erm.Of(InternetBankingSystem,
					erm.Rel("Gets account information from, and makes payments using>", MainframeBankingSystem),
					erm.Rel(sendsEmail+">", EmailSystem),
					erm.Rel("<Container of",
						erm.Of(WebApplication,
							erm.Rel("Delivers to the customer's web browser>", SinglePageApplication),
							erm.Rel("<Visits bigbank.com/ib using [HTTPS]", PersonalBankingCustomer),
						),
						erm.OfAll(clients,
							erm.Rel(jsonCalls+">", APIApplication),
							erm.Rel("<"+viewsBalances, PersonalBankingCustomer),
						),
						Database,
						erm.Of(APIApplication,
							erm.Rel(sendsEmail+">", EmailSystem),
							erm.Rel(xmlCalls+">", MainframeBankingSystem),
							erm.Rel(sqlAccess+">", Database),
							erm.Rel("<Component of",
								erm.Of(SignInController,
									erm.Rel("<"+jsonCalls, SinglePageApplication, MobileApp),
									erm.Rel("Uses>", SecurityComponent),
								),
								erm.Of(ResetPasswordController,
									erm.Rel("<"+jsonCalls, SinglePageApplication, MobileApp),
									erm.Rel("Uses>", EmailComponent),
								),
								erm.Of(AccountsSummaryController,
									erm.Rel("<"+jsonCalls, SinglePageApplication, MobileApp),
									erm.Rel("Uses>", MainframeBankingSystemFacade),
								),
								erm.Of(SecurityComponent, erm.Rel(sqlAccess+">", Database)),
								erm.Of(EmailComponent, erm.Rel(sendsEmail+">", EmailSystem)),
								erm.Of(MainframeBankingSystemFacade, erm.Rel(xmlCalls+">", MainframeBankingSystem)),
							),
						),
					),
				),
				MainframeBankingSystem,
				erm.Of(EmailSystem, erm.Rel("Sends emails to>", PersonalBankingCustomer)),
			),
		),
	}
}

func TestBigBankTriplets(t *testing.T) {
	triplets, err := erm.Parse(bigBankModel())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	clients := erm.Entities(SinglePageApplication, MobileApp)
	want := []erm.Triplet{
		{
			Source: erm.Entities(PersonalBankingCustomer, CustomerServiceStaff, BackOfficeStaff, ATM,
				InternetBankingSystem, MainframeBankingSystem, EmailSystem),
			Edge:   erm.Names("Software system of"),
			Target: erm.Entities(BigBankPlc),
		},
		erm.T(PersonalBankingCustomer, "Asks questions to", CustomerServiceStaff),
		erm.T(PersonalBankingCustomer, "Withdraws cash using", ATM),
		erm.T(PersonalBankingCustomer, viewsBalances, InternetBankingSystem),
		{
			Source: erm.Entities(CustomerServiceStaff, BackOfficeStaff, ATM),
			Edge:   erm.Names("Uses"),
			Target: erm.Entities(MainframeBankingSystem),
		},
		erm.T(InternetBankingSystem, "Gets account information from, and makes payments using", MainframeBankingSystem),
		erm.T(InternetBankingSystem, sendsEmail, EmailSystem),
		{
			Source: erm.Entities(WebApplication, SinglePageApplication, MobileApp, Database, APIApplication),
			Edge:   erm.Names("Container of"),
			Target: erm.Entities(InternetBankingSystem),
		},
		erm.T(WebApplication, "Delivers to the customer's web browser", SinglePageApplication),
		erm.T(PersonalBankingCustomer, "Visits bigbank.com/ib using [HTTPS]", WebApplication),
		{Source: clients, Edge: erm.Names(jsonCalls), Target: erm.Entities(APIApplication)},
		{Source: erm.Entities(PersonalBankingCustomer), Edge: erm.Names(viewsBalances), Target: clients},
		erm.T(APIApplication, sendsEmail, EmailSystem),
		erm.T(APIApplication, xmlCalls, MainframeBankingSystem),
		erm.T(APIApplication, sqlAccess, Database),
		{
			Source: erm.Entities(SignInController, ResetPasswordController, AccountsSummaryController,
				SecurityComponent, EmailComponent, MainframeBankingSystemFacade),
			Edge:   erm.Names("Component of"),
			Target: erm.Entities(APIApplication),
		},
		{Source: clients, Edge: erm.Names(jsonCalls), Target: erm.Entities(SignInController)},
		erm.T(SignInController, "Uses", SecurityComponent),
		{Source: clients, Edge: erm.Names(jsonCalls), Target: erm.Entities(ResetPasswordController)},
		erm.T(ResetPasswordController, "Uses", EmailComponent),
		{Source: clients, Edge: erm.Names(jsonCalls), Target: erm.Entities(AccountsSummaryController)},
		erm.T(AccountsSummaryController, "Uses", MainframeBankingSystemFacade),
		erm.T(SecurityComponent, sqlAccess, Database),
		erm.T(EmailComponent, sendsEmail, EmailSystem),
		erm.T(MainframeBankingSystemFacade, xmlCalls, MainframeBankingSystem),
		erm.T(EmailSystem, "Sends emails to", PersonalBankingCustomer),
	}

	if diff := cmp.Diff(want, triplets); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestBigBankQueries(t *testing.T) {
	triplets, err := erm.Parse(bigBankModel())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	t.Run("ContextEdges", func(t *testing.T) {
		got := erm.EdgesOfNode([]string{"Container of", "Software system of"}, InternetBankingSystem, triplets)
		want := []erm.Triplet{
			erm.T(PersonalBankingCustomer, viewsBalances, InternetBankingSystem),
			erm.T(InternetBankingSystem, "Gets account information from, and makes payments using", MainframeBankingSystem),
			erm.T(InternetBankingSystem, sendsEmail, EmailSystem),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("EdgesOfNode() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ComponentEdges", func(t *testing.T) {
		of := erm.EdgesOfName("Component of", triplets)
		if len(of) != 1 {
			t.Fatalf("EdgesOfName(Component of) = %d triplets, want 1", len(of))
		}
		components := of[0].Source.Items()

		got := erm.EdgesOfNodes([]string{"Code of", "Component of"}, components, triplets)
		want := []erm.Triplet{
			erm.T(SignInController, "Uses", SecurityComponent),
			erm.T(ResetPasswordController, "Uses", EmailComponent),
			erm.T(AccountsSummaryController, "Uses", MainframeBankingSystemFacade),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("EdgesOfNodes() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SharedNameAcrossDirections", func(t *testing.T) {
		got := erm.EdgesOfName(viewsBalances, triplets)
		if len(got) != 2 {
			t.Errorf("EdgesOfName(%q) = %d triplets, want 2", viewsBalances, len(got))
		}
	})
}
