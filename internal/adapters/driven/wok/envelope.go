package wok

import (
	"encoding/xml"
	"fmt"
)

// Vendor SOAP namespaces, fixed by the WSDL contract
const (
	soapNamespace   = "http://schemas.xmlsoap.org/soap/envelope/"
	authNamespace   = "http://auth.cxf.wokmws.thomsonreuters.com"
	searchNamespace = "http://woksearchlite.cxf.wokmws.thomsonreuters.com"
)

// requestEnvelope is the SOAP 1.1 envelope for outgoing calls
type requestEnvelope struct {
	XMLName xml.Name    `xml:"soapenv:Envelope"`
	SoapNS  string      `xml:"xmlns:soapenv,attr"`
	Body    requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	Payload any
}

func newRequestEnvelope(payload any) requestEnvelope {
	return requestEnvelope{
		SoapNS: soapNamespace,
		Body:   requestBody{Payload: payload},
	}
}

// authenticateCall is the credential-less authenticate operation; the
// deployed service authenticates by network-origin allowlisting
type authenticateCall struct {
	XMLName xml.Name `xml:"auth:authenticate"`
	AuthNS  string   `xml:"xmlns:auth,attr"`
}

// closeSessionCall terminates the session bound to the SID cookie
type closeSessionCall struct {
	XMLName xml.Name `xml:"auth:closeSession"`
	AuthNS  string   `xml:"xmlns:auth,attr"`
}

// searchCall carries the query and retrieve parameters of one search
type searchCall struct {
	XMLName  xml.Name           `xml:"wok:search"`
	SearchNS string             `xml:"xmlns:wok,attr"`
	Query    queryParameters    `xml:"queryParameters"`
	Retrieve retrieveParameters `xml:"retrieveParameters"`
}

type queryParameters struct {
	DatabaseID       string    `xml:"databaseID"`
	Editions         []edition `xml:"editions"`
	SymbolicTimeSpan string    `xml:"symbolicTimeSpan,omitempty"`
	TimeSpan         *timeSpan `xml:"timeSpan"`
	UserQuery        string    `xml:"userQuery"`
	QueryLanguage    string    `xml:"queryLanguage"`
}

type edition struct {
	Collection string `xml:"collection"`
	Edition    string `xml:"edition"`
}

type timeSpan struct {
	Begin string `xml:"begin"`
	End   string `xml:"end"`
}

type retrieveParameters struct {
	FirstRecord int          `xml:"firstRecord"`
	Count       int          `xml:"count"`
	Fields      []queryField `xml:"fields"`
}

type queryField struct {
	Name string `xml:"name"`
	Sort string `xml:"sort"`
}

// responseEnvelope decodes any of the vendor responses; exactly one of
// the body branches is populated per call
type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault        *soapFault            `xml:"Fault"`
		Authenticate *authenticateResponse `xml:"authenticateResponse"`
		Close        *closeSessionResponse `xml:"closeSessionResponse"`
		Search       *searchResponse       `xml:"searchResponse"`
	} `xml:"Body"`
}

// soapFault is a protocol-level failure reported by the remote service
type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *soapFault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

type authenticateResponse struct {
	Return string `xml:"return"`
}

type closeSessionResponse struct{}

type searchResponse struct {
	Return searchReturn `xml:"return"`
}

type searchReturn struct {
	QueryID         string       `xml:"queryId"`
	RecordsFound    int          `xml:"recordsFound"`
	RecordsSearched int64        `xml:"recordsSearched"`
	Records         []liteRecord `xml:"records"`
}

// liteRecord is the vendor's generic record shape: an identifier plus
// label/value pair lists with no guaranteed labels
type liteRecord struct {
	UT       string            `xml:"ut"`
	Titles   []labelValuesPair `xml:"title"`
	Authors  []labelValuesPair `xml:"authors"`
	Source   []labelValuesPair `xml:"source"`
	Keywords []labelValuesPair `xml:"keywords"`
}

type labelValuesPair struct {
	Label  string   `xml:"label"`
	Values []string `xml:"value"`
}
