// Package accessrights loads the XML access-rights file that assigns
// client access points their get, set and action permissions per object.
//
// The file layout:
//
//	<dlmsSetup>
//	  <clientAP name="utility" accessPointId="1" minimumSecurity="high" priority="1"/>
//	  <obisCode code="1-65:0.129.0*255" name="load control" class="1">
//	    <property type="attribute" index="2"/>
//	    <client name="utility">
//	      <access get="true" set="true"/>
//	    </client>
//	  </obisCode>
//	</dlmsSetup>
//
// clientAP and obisCode elements may be nested at any depth below the root.
// File.ObjectList turns the permissions of one client into the object list
// an association of that client reports.
package accessrights
